package main

import (
	"encoding/base64"
	"fmt"
	"log"
	"math/big"
	"net/url"

	"github.com/tonmint/tonmint/address"
	"github.com/tonmint/tonmint/tlb"
	"github.com/tonmint/tonmint/ton/jetton"
	"github.com/tonmint/tonmint/tvm/cell"
)

func main() {
	// jetton minter and owner of the wallet which receives minted jettons
	minter := address.MustParseAddr("EQAbMQzuuGiCne0R7QEj9nrXsjM7gNjeVmrlBZouyC-SCLlO")
	owner := address.MustParseAddr("EQC6KV4zs8TJtSZapOrRFmqSkxzpq-oSCoxekQRKElf4nC1I")

	// normally it is loaded from compiled artifact, see jetton.LoadWalletCode
	code := cell.BeginCell().MustStoreUInt(0xC0DE, 16).MustEndCell()

	wallet, err := jetton.CalcWalletAddress(minter, owner, code)
	if err != nil {
		log.Fatalln("calc wallet address err:", err.Error())
		return
	}

	boc, err := jetton.MintPayloadBOC(big.NewInt(1_000_000_000), wallet)
	if err != nil {
		log.Fatalln("build payload err:", err.Error())
		return
	}

	fmt.Println("jetton wallet:", wallet.String())
	fmt.Println("payload:", base64.StdEncoding.EncodeToString(boc))

	// prints TON url which can be used to send mint message from any wallet,
	// for example you can make QR code from it and scan using TonKeeper
	q := url.Values{}
	q.Set("amount", tlb.MustFromTON("0.05").Nano().String())
	q.Set("bin", base64.RawURLEncoding.EncodeToString(boc))
	fmt.Printf("ton://transfer/%s?%s\n", minter.String(), q.Encode())
}
