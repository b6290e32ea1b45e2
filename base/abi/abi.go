// Package abi holds the parsed contract ABIs the auction talks to: ERC-721 for custody of
// the lots and ERC-1271 for signatures of contract wallets.
package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var (
	ERC721TokenABI = mustParse("erc721", erc721ABIJson)
	ERC1271ABI     = mustParse("erc1271", erc1271ABIJson)
)

func mustParse(name, json string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(json))
	if err != nil {
		panic("failed to parse " + name + " abi: " + err.Error())
	}
	return parsed
}
