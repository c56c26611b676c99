// Package artifact finds compiled jetton wallet code on disk.
package artifact

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/tonmint/tonmint/ton/jetton"
	"github.com/tonmint/tonmint/tvm/cell"
)

var ErrNoCodeKey = errors.New("no known wallet code key in json artifact")

// DefaultCandidates returns paths checked for wallet code, in priority order.
// Explicit path goes first when set.
func DefaultCandidates(dir, explicit string) []string {
	list := []string{
		filepath.Join(dir, "artifacts", "jetton_wallet.cell.boc"),
		filepath.Join(dir, "artifacts", "JettonWallet.json"),
		filepath.Join(dir, "build", "JettonWallet.json"),
		filepath.Join(dir, "build", "JettonWallet.compiled.json"),
		filepath.Join(dir, "artifacts", "jetton_wallet.tvc"),
		filepath.Join(dir, "build", "jetton_wallet.tvc"),
	}

	if explicit != "" {
		list = append([]string{explicit}, list...)
	}
	return list
}

// Locator reads the first usable wallet code artifact among candidates.
type Locator struct {
	logger     hclog.Logger
	candidates []string
}

func NewLocator(logger hclog.Logger, candidates []string) *Locator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Locator{
		logger:     logger.Named("artifact"),
		candidates: candidates,
	}
}

func (l *Locator) Candidates() []string {
	return append([]string{}, l.candidates...)
}

// Discover returns bag of cells bytes of the wallet code.
// Missing files are skipped, broken ones are logged and reported together
// when nothing usable is found.
func (l *Locator) Discover() ([]byte, error) {
	var result *multierror.Error

	for _, p := range l.candidates {
		buf, err := readArtifact(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			l.logger.Warn("failed to load wallet code artifact", "path", p, "err", err)
			result = multierror.Append(result, fmt.Errorf("%s: %w", p, err))
			continue
		}

		l.logger.Info("wallet code loaded", "path", p)
		return buf, nil
	}

	if result == nil {
		l.logger.Warn("no wallet code artifact found", "candidates", l.candidates)
		return nil, fmt.Errorf("%w: no artifact at %s", jetton.ErrCodeNotFound, strings.Join(l.candidates, ", "))
	}
	return nil, fmt.Errorf("%w: %w", jetton.ErrCodeNotFound, result.ErrorOrNil())
}

// LoadCode discovers and decodes wallet code.
func (l *Locator) LoadCode() (*cell.Cell, error) {
	buf, err := l.Discover()
	if err != nil {
		return nil, err
	}
	return jetton.LoadWalletCode(buf)
}

func readArtifact(path string) ([]byte, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return nil, errors.New("is a directory")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return codeFromJSON(data)
	}

	if _, err = jetton.LoadWalletCode(data); err != nil {
		return nil, err
	}
	return data, nil
}

// compiledArtifact is the json output of contract compilers.
type compiledArtifact struct {
	Hex     string `json:"hex"`
	CodeBoc string `json:"codeBoc"`
	Code    string `json:"code"`
}

func codeFromJSON(data []byte) ([]byte, error) {
	var a compiledArtifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}

	keys := []struct {
		name   string
		value  string
		decode func(string) ([]byte, error)
	}{
		{"hex", a.Hex, hex.DecodeString},
		{"codeBoc", a.CodeBoc, base64.StdEncoding.DecodeString},
		{"code", a.Code, base64.StdEncoding.DecodeString},
	}

	var result *multierror.Error
	for _, k := range keys {
		if k.value == "" {
			continue
		}

		buf, err := k.decode(strings.TrimSpace(k.value))
		if err == nil {
			_, err = jetton.LoadWalletCode(buf)
		}
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("key %s: %w", k.name, err))
			continue
		}
		return buf, nil
	}

	if result == nil {
		return nil, ErrNoCodeKey
	}
	return nil, result.ErrorOrNil()
}
