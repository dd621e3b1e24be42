package client

import (
	"encoding/json"
	"fmt"

	"github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/spvproof/spvproof/rpc/types"
)

var jSONRPCCall = rpc.JSONRPCCall

// Client calls the spv endpoints of a remote spvproof node
type Client struct {
	url string
}

// NewClient returns a client ready to be used
func NewClient(url string) *Client {
	return &Client{
		url: url,
	}
}

// VerifyInclusion asks the remote node to verify that txid is included in the block at height
func (c *Client) VerifyInclusion(height uint64, txid string, trace bool) (*types.InclusionResult, error) {
	response, err := jSONRPCCall(c.url, "spv_verifyInclusion", height, txid, trace)
	if err != nil {
		return nil, err
	}

	// Check if the response is an error
	if response.Error != nil {
		return nil, fmt.Errorf("error in the response calling spv_verifyInclusion: %v", response.Error)
	}
	result := types.InclusionResult{}
	err = json.Unmarshal(response.Result, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Status returns the version and data source of the remote node
func (c *Client) Status() (*types.Status, error) {
	response, err := jSONRPCCall(c.url, "spv_status")
	if err != nil {
		return nil, err
	}

	if response.Error != nil {
		return nil, fmt.Errorf("error in the response calling spv_status: %v", response.Error)
	}
	result := types.Status{}
	err = json.Unmarshal(response.Result, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
