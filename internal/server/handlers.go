package server

import (
	"encoding/base64"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/skip2/go-qrcode"

	"github.com/tonmint/tonmint/address"
	"github.com/tonmint/tonmint/ton/jetton"
	"github.com/tonmint/tonmint/tvm/cell"
)

const qrSize = 256

func (s *Server) instrument(route string, h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s.metrics.RequestsCounterInc(route)
		err := h(c)
		if err != nil {
			s.metrics.ErrorsCounterInc(route)
		}
		return err
	}
}

// Ping godoc
//
//	@summary		Health check
//	@description	Reports whether the service is able to build mint payloads.
//	@id				ping
//	@tags			system
//	@produce		json
//	@success		200	{object}	PingResponse
//	@router			/ping [get]
func (s *Server) Ping(c *fiber.Ctx) error {
	return c.JSON(PingResponse{
		Status:                  "ok",
		WalletCodeLoaded:        s.code.Get() != nil,
		MinterAddressConfigured: s.minter != nil,
	})
}

// BuildMint godoc
//
//	@summary		Build mint message
//	@description	Derives recipient jetton wallet address and builds a mint payload addressed to the configured minter.
//	@id				build_mint
//	@tags			mint
//	@accept			json
//	@produce		json
//	@param			request	body		BuildMintRequest	true	"Mint request"
//	@success		200		{object}	BuildMintResponse
//	@failure		400		{object}	ErrorResponse
//	@failure		500		{object}	ErrorResponse
//	@router			/api/build-mint [post]
func (s *Server) BuildMint(c *fiber.Ctx) error {
	res, err := s.buildMint(c)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// BuildMintQR godoc
//
//	@summary		Build mint transfer QR code
//	@description	Same as build-mint, but responds with PNG QR code of the transfer link.
//	@id				build_mint_qr
//	@tags			mint
//	@accept			json
//	@produce		png
//	@param			request	body		BuildMintRequest	true	"Mint request"
//	@success		200		{file}		binary
//	@failure		400		{object}	ErrorResponse
//	@failure		500		{object}	ErrorResponse
//	@router			/api/build-mint/qr [post]
func (s *Server) BuildMintQR(c *fiber.Ctx) error {
	res, err := s.buildMint(c)
	if err != nil {
		return err
	}

	png, err := qrcode.Encode(res.TransferLink, qrcode.Medium, qrSize)
	if err != nil {
		return internalError(CodeInternal, "failed to encode qr: %s", err.Error())
	}

	c.Type("png")
	return c.Send(png)
}

func (s *Server) buildMint(c *fiber.Ctx) (*BuildMintResponse, error) {
	if s.minter == nil {
		return nil, internalError(CodeMinterNotConfigured, "MINTER_ADDRESS is not configured")
	}

	var req BuildMintRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, badRequest(CodeInvalidRequest, "invalid request body: %s", err.Error())
	}

	if req.RecipientOwner == "" || isMissing(req.Amount) {
		return nil, badRequest(CodeMissingFields, "recipientOwner and amount are required")
	}

	code, err := s.walletCode()
	if err != nil {
		return nil, internalError(CodeWalletCodeNotLoaded, "jetton wallet code is not available: %s", err.Error())
	}

	owner, err := address.ParseAnyAddr(req.RecipientOwner)
	if err != nil {
		return nil, badRequest(CodeInvalidAddress, "invalid recipientOwner address: %s", err.Error())
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, badRequest(CodeInvalidAmount, "invalid amount: %s", err.Error())
	}

	if amount.Sign() == 0 {
		return nil, badRequest(CodeInvalidAmount, "amount should be positive")
	}

	if amount.Cmp(s.cfg.MaxMintAmount.Int) > 0 {
		return nil, badRequest(CodeAmountAboveCap, "amount exceeds maximum %s", s.cfg.MaxMintAmount.String())
	}

	wallet, err := s.walletAddress(owner, code)
	if err != nil {
		return nil, mapCoreError(err)
	}

	boc, err := jetton.MintPayloadBOC(amount, wallet)
	if err != nil {
		return nil, mapCoreError(err)
	}

	payload := base64.StdEncoding.EncodeToString(boc)
	to := s.formatAddr(s.minter)
	value := s.cfg.DefaultMsgValue.Nano()

	return &BuildMintResponse{
		PayloadBase64:          payload,
		RecipientWalletAddress: s.formatAddr(wallet),
		Message: MintMessage{
			To:    to,
			Value: value.String(),
			Data: MintMessageData{
				Payload: payload,
			},
		},
		TransferLink: jetton.TransferLink(to, value, boc),
	}, nil
}

func mapCoreError(err error) error {
	switch {
	case errors.Is(err, address.ErrInvalidAddress):
		return badRequest(CodeInvalidAddress, "%s", err.Error())
	case errors.Is(err, cell.ErrRange):
		return badRequest(CodeInvalidAmount, "%s", err.Error())
	case errors.Is(err, jetton.ErrCodeNotFound):
		return internalError(CodeWalletCodeNotLoaded, "%s", err.Error())
	default:
		return err
	}
}
