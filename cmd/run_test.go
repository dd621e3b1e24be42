package main

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/spvproof/spvproof/blocksource"
	"github.com/spvproof/spvproof/blocksource/mocks"
	"github.com/spvproof/spvproof/electrum"
	"github.com/spvproof/spvproof/esplora"
	"github.com/spvproof/spvproof/log"
	"github.com/spvproof/spvproof/merkle"
	"github.com/spvproof/spvproof/runner"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	txid100000 = "e9a66845e05d5abc0ad04ec80f774a7e585c6e8db975962d069a522137b80c1d"
	root100000 = "f3e94742aca4b5ef85488dc37c06c3282295ffec960994b2c0d5ac2a25a95766"
)

func TestCreateBlockDataSource(t *testing.T) {
	src, err := createBlockDataSource(blocksource.Config{
		Type:      blocksource.TypeElectrum,
		URL:       "tcp://127.0.0.1:50001",
		CacheSize: 8,
	})
	require.NoError(t, err)
	cached, ok := src.(*blocksource.CachedSource)
	require.True(t, ok)
	_, ok = cached.BlockDataSource.(*electrum.Client)
	require.True(t, ok)
	require.NoError(t, src.Close())

	src, err = createBlockDataSource(blocksource.Config{
		Type: blocksource.TypeEsplora,
		URL:  "https://blockstream.info/api",
	})
	require.NoError(t, err)
	_, ok = src.(*esplora.Client)
	require.True(t, ok)

	_, err = createBlockDataSource(blocksource.Config{Type: "bitcoind", URL: "http://localhost:8332"})
	require.Error(t, err)

	_, err = createBlockDataSource(blocksource.Config{Type: blocksource.TypeEsplora, URL: "tcp://localhost:50001"})
	require.Error(t, err)
}

func TestRunVerifier(t *testing.T) {
	proof := merkle.Proof{
		Index: 3,
		Siblings: []merkle.Hash{
			merkle.MustParseHash("6359f0868171b1d194cbee1af2f16ea598ae8fad666d9b012c8ed2b79a236ec4"),
			merkle.MustParseHash("ccdafb73d8dcd0173d5d5c3c9a0770d0b3953db889dab99ef05b1907518cb815"),
		},
	}
	cfg := runner.Config{Targets: []runner.Target{
		{Height: 100000, TxID: txid100000},
		{Height: 100001, TxID: txid100000},
	}}

	t.Run("all targets checked", func(t *testing.T) {
		src := mocks.NewBlockDataSource(t)
		src.EXPECT().FetchBlockRoot(mock.Anything, mock.Anything).Return(merkle.MustParseHash(root100000), nil)
		src.EXPECT().FetchInclusionProof(mock.Anything, mock.Anything, mock.Anything).Return(proof, nil)

		var out bytes.Buffer
		err := runVerifier(context.Background(), runner.New(cfg, src, log.GetDefaultLogger()), &out)
		require.NoError(t, err)
		require.Contains(t, out.String(), "at height 100001 is correct: true")
	})

	t.Run("a target could not be checked", func(t *testing.T) {
		src := mocks.NewBlockDataSource(t)
		src.EXPECT().FetchBlockRoot(mock.Anything, uint64(100000)).Return(merkle.MustParseHash(root100000), nil)
		src.EXPECT().FetchBlockRoot(mock.Anything, uint64(100001)).
			Return(merkle.Hash{}, blocksource.NewTransportError("dial", fmt.Errorf("connection refused")))
		src.EXPECT().FetchInclusionProof(mock.Anything, mock.Anything, mock.Anything).Return(proof, nil)

		var out bytes.Buffer
		err := runVerifier(context.Background(), runner.New(cfg, src, log.GetDefaultLogger()), &out)
		require.ErrorIs(t, err, errUncheckedTargets)
		require.ErrorIs(t, err, blocksource.ErrTransport)
		require.Contains(t, err.Error(), "1 of 2 targets")
		// the report is still written for every target
		require.Contains(t, out.String(), "at height 100000 is correct: true")
		require.Contains(t, out.String(), "at height 100001 could not be checked")
	})
}

func TestRunExitsWithErrorWhenSourceIsDown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	cfgFile := filepath.Join(t.TempDir(), "cfg.toml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(fmt.Sprintf(`
SourceURL = "tcp://%s"

[Source]
  Timeout = "2s"
  MaxRetries = 0
  CacheSize = 0

[Runner]
  [[Runner.Targets]]
    Height = 100000
    TxID = "%s"
`, addr, txid100000)), 0600))

	err = newApp().Run([]string{appName, "run", "-c", cfgFile})
	require.ErrorIs(t, err, errUncheckedTargets)
	require.ErrorIs(t, err, blocksource.ErrTransport)
}
