package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteConfigSchema(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeConfigSchema(&out))

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &schema))
	require.Equal(t, "spvproof config file", schema["title"])
	properties, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	for _, section := range []string{"Log", "Source", "Runner", "RPC"} {
		require.Contains(t, properties, section)
	}
}
