package wallet

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonmint/tonmint/internal/command"
	"github.com/tonmint/tonmint/tvm/cell"
)

const (
	testMinter = "EQAbMQzuuGiCne0R7QEj9nrXsjM7gNjeVmrlBZouyC-SCLlO"
	testOwner  = "EQC6KV4zs8TJtSZapOrRFmqSkxzpq-oSCoxekQRKElf4nC1I"
)

func writeCode(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "artifacts"), 0o755))

	code := cell.BeginCell().MustStoreUInt(0xC0DE, 16).MustEndCell()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "artifacts", "jetton_wallet.cell.boc"), code.ToBOC(), 0o600))

	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := GetCommand()
	command.RegisterJSONOutputFlag(cmd)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestWalletAddress(t *testing.T) {
	dir := writeCode(t)

	out, err := run(t, "--dir", dir, "--minter", testMinter, "--owner", testOwner, "--json")
	require.NoError(t, err)

	var res WalletResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))

	assert.Equal(t, WalletResult{
		Minter:   testMinter,
		Owner:    testOwner,
		Wallet:   "EQA1A_ym1dAzKxw8GkT-R3F1J2PRbzjX_i54Epb9hA7k_rZ7",
		CodeHash: "be4917c4e2d3acc7c9c23ec458fa6d84f3eaa1737c9f72b414ba1a10263e0734",
	}, res)

	out, err = run(t, "--dir", dir, "--minter", testMinter, "--owner", testOwner, "--testnet")
	require.NoError(t, err)
	assert.Contains(t, out, "Wallet    = kQA1A_ym1dAzKxw8GkT-R3F1J2PRbzjX_i54Epb9hA7k_g3x\n")
}

func TestWalletAddress_Errors(t *testing.T) {
	dir := writeCode(t)

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"no minter", []string{"--dir", dir, "--owner", testOwner}, "--minter is required"},
		{"bad owner", []string{"--dir", dir, "--minter", testMinter, "--owner", "xyz"}, "invalid --owner"},
		{"no code", []string{"--dir", t.TempDir(), "--minter", testMinter, "--owner", testOwner}, "jetton wallet code not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
