package jetton

import (
	"math/big"
	"testing"
)

func TestTransferLink(t *testing.T) {
	tests := []struct {
		name    string
		value   *big.Int
		payload []byte
		want    string
	}{
		{"plain", big.NewInt(1500000), []byte{0xb5, 0xee}, "ton://transfer/" + testMaster.String() + "?amount=1500000&bin=te4"},
		// url alphabet, no padding
		{"url alphabet", big.NewInt(50000000), []byte{0xfb, 0xff}, "ton://transfer/" + testMaster.String() + "?amount=50000000&bin=-_8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransferLink(testMaster.String(), tt.value, tt.payload); got != tt.want {
				t.Errorf("TransferLink() = %s, want %s", got, tt.want)
			}
		})
	}
}
