package action

import (
	"encoding/base64"
	"encoding/json"

	"github.com/frereit/KauMA/crypto/aescipher"
	"github.com/frereit/KauMA/crypto/gcm"
	"github.com/frereit/KauMA/crypto/params"
)

func init() {
	Register("gcm_encrypt", handleGCMEncrypt)
}

type gcmEncryptArgs struct {
	Key            string `json:"key"`
	Nonce          string `json:"nonce"`
	AssociatedData string `json:"associated_data"`
	Plaintext      string `json:"plaintext"`
}

type gcmEncryptResponse struct {
	Ciphertext string `json:"ciphertext"`
	Tag        string `json:"tag"`
	Y0         string `json:"y0"`
	H          string `json:"h"`
}

func handleGCMEncrypt(raw json.RawMessage) (any, error) {
	var args gcmEncryptArgs
	if err := decodeArgs("gcm_encrypt", raw, &args); err != nil {
		return nil, err
	}

	key, err := base64.StdEncoding.DecodeString(args.Key)
	if err != nil {
		return nil, err
	}
	nonce, err := base64.StdEncoding.DecodeString(args.Nonce)
	if err != nil {
		return nil, err
	}
	ad, err := base64.StdEncoding.DecodeString(args.AssociatedData)
	if err != nil {
		return nil, err
	}
	plaintext, err := base64.StdEncoding.DecodeString(args.Plaintext)
	if err != nil {
		return nil, err
	}

	enc := gcm.NewEncryptor(aescipher.New())
	result, err := enc.Seal(params.NewAEADParameters(params.NewKeyParameter(key), 128, nonce, ad), plaintext)
	if err != nil {
		return nil, err
	}

	return gcmEncryptResponse{
		Ciphertext: base64.StdEncoding.EncodeToString(result.Ciphertext),
		Tag:        base64.StdEncoding.EncodeToString(result.Tag[:]),
		Y0:         base64.StdEncoding.EncodeToString(result.Y0[:]),
		H:          base64.StdEncoding.EncodeToString(result.H.GCMBytes()),
	}, nil
}
