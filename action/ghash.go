package action

import (
	"encoding/base64"
	"encoding/json"

	"github.com/frereit/KauMA/crypto/gcm"
)

func init() {
	Register("ghash", handleGHASH)
}

type ghashArgs struct {
	AssociatedData string `json:"associated_data"`
	Ciphertext     string `json:"ciphertext"`
	AuthKey        string `json:"auth_key"`
}

type ghashResponse struct {
	Tag string `json:"tag"`
}

func handleGHASH(raw json.RawMessage) (any, error) {
	var args ghashArgs
	if err := decodeArgs("ghash", raw, &args); err != nil {
		return nil, err
	}

	ad, err := base64.StdEncoding.DecodeString(args.AssociatedData)
	if err != nil {
		return nil, err
	}
	ct, err := base64.StdEncoding.DecodeString(args.Ciphertext)
	if err != nil {
		return nil, err
	}
	h, err := decodeGCMBytesField(args.AuthKey)
	if err != nil {
		return nil, err
	}

	tag := gcm.Sum(ad, ct, h)
	return ghashResponse{Tag: base64.StdEncoding.EncodeToString(tag)}, nil
}
