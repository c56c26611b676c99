package jetton

import (
	"encoding/base64"
	"math/big"
	"net/url"
)

// TransferLink builds ton://transfer deep link understood by wallets,
// to is the rendered destination address, value is in nanotons.
func TransferLink(to string, value *big.Int, payload []byte) string {
	q := url.Values{}
	q.Set("amount", value.String())
	q.Set("bin", base64.RawURLEncoding.EncodeToString(payload))

	return "ton://transfer/" + to + "?" + q.Encode()
}
