package action

import (
	"encoding/base64"
	"encoding/json"

	"github.com/frereit/KauMA/crypto/gcm/cantorzassenhaus"
	"github.com/frereit/KauMA/crypto/gf128"
	"github.com/frereit/KauMA/crypto/gf128poly"
)

func init() {
	Register("gfpoly_factor_cantor_zassenhaus", handleFactor)
}

type factorArgs struct {
	// Coefficients lists the polynomial's coefficients in ascending degree
	// order (coefficients[0] is the constant term), each a base64-encoded
	// 16-byte GCM-convention field element.
	Coefficients []string `json:"coefficients"`
}

type factorResponse struct {
	Roots []string `json:"roots"`
}

func handleFactor(raw json.RawMessage) (any, error) {
	var args factorArgs
	if err := decodeArgs("gfpoly_factor_cantor_zassenhaus", raw, &args); err != nil {
		return nil, err
	}

	coeffs := make([]gf128.Element, len(args.Coefficients))
	for i, c := range args.Coefficients {
		e, err := decodeGCMBytesField(c)
		if err != nil {
			return nil, err
		}
		coeffs[i] = e
	}

	f := gf128poly.New(coeffs)
	roots, err := cantorzassenhaus.Zeros(f, cantorzassenhaus.CryptoRandomSource)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(roots))
	for i, r := range roots {
		out[i] = base64.StdEncoding.EncodeToString(r.GCMBytes())
	}
	return factorResponse{Roots: out}, nil
}
