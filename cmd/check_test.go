package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spvproof/spvproof"
	"github.com/spvproof/spvproof/blocksource"
	"github.com/spvproof/spvproof/merkle"
	"github.com/spvproof/spvproof/rpc/types"
	"github.com/stretchr/testify/require"
)

type fakeNode struct {
	statusErr error
	verifyErr error
	result    *types.InclusionResult
	verified  int
}

func (n *fakeNode) Status() (*types.Status, error) {
	if n.statusErr != nil {
		return nil, n.statusErr
	}
	return &types.Status{Version: spvproof.GetVersion(), Source: blocksource.TypeEsplora}, nil
}

func (n *fakeNode) VerifyInclusion(height uint64, txid string, trace bool) (*types.InclusionResult, error) {
	n.verified++
	if n.verifyErr != nil {
		return nil, n.verifyErr
	}
	return n.result, nil
}

func TestCheckRemote(t *testing.T) {
	node := &fakeNode{result: &types.InclusionResult{
		Height:   100000,
		TxID:     merkle.MustParseHash(txid100000),
		Root:     merkle.MustParseHash(root100000),
		Index:    3,
		Included: true,
	}}

	var out bytes.Buffer
	res, err := checkRemote(node, &out, 100000, txid100000, false)
	require.NoError(t, err)
	require.True(t, res.Included)
	require.Equal(t, uint64(100000), res.Target.Height)
	require.Equal(t, root100000, res.Root.String())
	require.Equal(t, "Checked by spvproof "+spvproof.Version+" ("+spvproof.GitRev+") reading from esplora\n", out.String())
}

func TestCheckRemoteErrors(t *testing.T) {
	var out bytes.Buffer
	unreachable := &fakeNode{statusErr: errors.New("connection refused")}
	_, err := checkRemote(unreachable, &out, 100000, txid100000, false)
	require.ErrorContains(t, err, "connection refused")
	require.Zero(t, unreachable.verified)
	require.Empty(t, out.String())

	failing := &fakeNode{verifyErr: errors.New("error in the response calling spv_verifyInclusion")}
	_, err = checkRemote(failing, &out, 100000, txid100000, false)
	require.ErrorContains(t, err, "spv_verifyInclusion")
	require.Equal(t, 1, failing.verified)
}
