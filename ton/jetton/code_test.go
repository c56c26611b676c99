package jetton

import (
	"encoding/base64"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/tonmint/tonmint/tvm/cell"
)

// BoC of a cell with 16 bits 0xC0DE
const testCodeBOC = "te6cckEBAQEABAAABMDeovU4vg=="

func testCodeBytes() []byte {
	b, _ := base64.StdEncoding.DecodeString(testCodeBOC)
	return b
}

func TestLoadWalletCode(t *testing.T) {
	code, err := LoadWalletCode(testCodeBytes())
	if err != nil {
		t.Fatal(err)
	}

	if !code.Equals(testCode) {
		t.Fatal("code mismatch", code.Dump())
	}
}

func TestLoadWalletCode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"nil", nil},
		{"garbage", []byte("not a bag of cells")},
		{"truncated", testCodeBytes()[:10]},
		{"no roots", []byte{0xb5, 0xee, 0x9c, 0x72, 0x01, 0x01, 0x01, 0x00, 0x00, 0x02, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadWalletCode(tt.data)
			if !errors.Is(err, ErrCodeNotFound) {
				t.Fatal("expected ErrCodeNotFound, got", err)
			}
			if c != nil {
				t.Fatal("no code expected")
			}
		})
	}

	_, err := LoadWalletCode([]byte("garbage"))
	if !errors.Is(err, cell.ErrMalformedBOC) {
		t.Fatal("decode error should be kept in chain, got", err)
	}
}

func TestCodeCache_Load(t *testing.T) {
	var cache CodeCache
	if cache.Get() != nil {
		t.Fatal("empty cache should return nil")
	}

	var calls int32
	failing := func() ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("no artifacts")
	}

	if _, err := cache.Load(failing); !errors.Is(err, ErrCodeNotFound) {
		t.Fatal("expected ErrCodeNotFound, got", err)
	}
	if cache.Get() != nil {
		t.Fatal("failed discovery should not be cached")
	}

	ok := func() ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return testCodeBytes(), nil
	}

	code, err := cache.Load(ok)
	if err != nil {
		t.Fatal(err)
	}
	if !code.Equals(testCode) || cache.Get() != code {
		t.Fatal("code should be cached")
	}

	// cached, discovery is not called anymore
	if _, err = cache.Load(failing); err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatal("unexpected discovery calls", calls)
	}

	if cache.Set(cell.BeginCell().MustEndCell()) {
		t.Fatal("code should not be replaced")
	}
}

func TestCodeCache_Concurrent(t *testing.T) {
	var cache CodeCache
	var wg sync.WaitGroup

	results := make([]*cell.Cell, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			code, err := cache.Load(func() ([]byte, error) {
				return testCodeBytes(), nil
			})
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = code
		}(i)
	}
	wg.Wait()

	stored := cache.Get()
	for i, c := range results {
		if c == nil {
			t.Fatal("no result", i)
		}
		if !c.Equals(stored) {
			t.Fatal("all loads should see equal code", i)
		}
	}
}

func TestCodeCache_Set(t *testing.T) {
	var cache CodeCache
	if cache.Set(nil) {
		t.Fatal("nil should not be stored")
	}
	if !cache.Set(testCode) {
		t.Fatal("first code should be stored")
	}
	if cache.Get() != testCode {
		t.Fatal("stored code mismatch")
	}
}
