package action

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/frereit/KauMA/crypto/paddingoracle"
)

func init() {
	Register("padding_oracle_attack", handlePaddingOracleAttack)
}

type paddingOracleAttackArgs struct {
	Host       string `json:"host"`
	Port       int    `json:"port"`
	IV         string `json:"iv"`
	Ciphertext string `json:"ciphertext"`
}

type paddingOracleAttackResponse struct {
	Plaintext string `json:"plaintext"`
}

func handlePaddingOracleAttack(raw json.RawMessage) (any, error) {
	var args paddingOracleAttackArgs
	if err := decodeArgs("padding_oracle_attack", raw, &args); err != nil {
		return nil, err
	}

	iv, err := base64.StdEncoding.DecodeString(args.IV)
	if err != nil {
		return nil, err
	}
	ciphertext, err := base64.StdEncoding.DecodeString(args.Ciphertext)
	if err != nil {
		return nil, err
	}

	client := paddingoracle.NewClient(fmt.Sprintf("%s:%d", args.Host, args.Port))
	plaintext, err := client.RecoverPlaintext(context.Background(), iv, ciphertext)
	if err != nil {
		return nil, err
	}
	return paddingOracleAttackResponse{Plaintext: base64.StdEncoding.EncodeToString(plaintext)}, nil
}
