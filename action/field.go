package action

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/frereit/KauMA/crypto/gf128"
)

func init() {
	Register("gfmul", handleGFMul)
	Register("gfadd", handleGFAdd)
	Register("gfinv", handleGFInv)
	Register("gfdiv", handleGFDiv)
	Register("gfexponents", handleGFExponents)
	Register("gffromexponents", handleGFFromExponents)
}

type gfBinaryArgs struct {
	A string `json:"a"`
	B string `json:"b"`
}

type gfUnaryArgs struct {
	A string `json:"a"`
}

type gfElementResponse struct {
	Result string `json:"result"`
}

func decodeGCMBytesField(b64 string) (gf128.Element, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return gf128.Zero, fmt.Errorf("decoding base64 field element: %w", err)
	}
	return gf128.FromGCMBytes(raw)
}

func encodeGCMBytesField(e gf128.Element) gfElementResponse {
	return gfElementResponse{Result: base64.StdEncoding.EncodeToString(e.GCMBytes())}
}

func handleGFMul(raw json.RawMessage) (any, error) {
	var args gfBinaryArgs
	if err := decodeArgs("gfmul", raw, &args); err != nil {
		return nil, err
	}
	a, err := decodeGCMBytesField(args.A)
	if err != nil {
		return nil, err
	}
	b, err := decodeGCMBytesField(args.B)
	if err != nil {
		return nil, err
	}
	return encodeGCMBytesField(gf128.Multiply(a, b)), nil
}

func handleGFAdd(raw json.RawMessage) (any, error) {
	var args gfBinaryArgs
	if err := decodeArgs("gfadd", raw, &args); err != nil {
		return nil, err
	}
	a, err := decodeGCMBytesField(args.A)
	if err != nil {
		return nil, err
	}
	b, err := decodeGCMBytesField(args.B)
	if err != nil {
		return nil, err
	}
	return encodeGCMBytesField(a.Add(b)), nil
}

func handleGFInv(raw json.RawMessage) (any, error) {
	var args gfUnaryArgs
	if err := decodeArgs("gfinv", raw, &args); err != nil {
		return nil, err
	}
	a, err := decodeGCMBytesField(args.A)
	if err != nil {
		return nil, err
	}
	if a.IsZero() {
		return nil, fmt.Errorf("gfinv: zero element has no inverse")
	}
	return encodeGCMBytesField(a.Inverse()), nil
}

func handleGFDiv(raw json.RawMessage) (any, error) {
	var args gfBinaryArgs
	if err := decodeArgs("gfdiv", raw, &args); err != nil {
		return nil, err
	}
	a, err := decodeGCMBytesField(args.A)
	if err != nil {
		return nil, err
	}
	b, err := decodeGCMBytesField(args.B)
	if err != nil {
		return nil, err
	}
	if b.IsZero() {
		return nil, fmt.Errorf("gfdiv: division by zero element")
	}
	return encodeGCMBytesField(gf128.Divide(a, b)), nil
}

type gfExponentsResponse struct {
	Exponents []int `json:"exponents"`
}

func handleGFExponents(raw json.RawMessage) (any, error) {
	var args gfUnaryArgs
	if err := decodeArgs("gfexponents", raw, &args); err != nil {
		return nil, err
	}
	a, err := decodeGCMBytesField(args.A)
	if err != nil {
		return nil, err
	}
	return gfExponentsResponse{Exponents: a.Exponents()}, nil
}

type gfFromExponentsArgs struct {
	Exponents []int `json:"exponents"`
}

func handleGFFromExponents(raw json.RawMessage) (any, error) {
	var args gfFromExponentsArgs
	if err := decodeArgs("gffromexponents", raw, &args); err != nil {
		return nil, err
	}
	e, err := gf128.FromExponents(args.Exponents)
	if err != nil {
		return nil, err
	}
	return encodeGCMBytesField(e), nil
}
