package action

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/frereit/KauMA/crypto/gcm/forgery"
)

func init() {
	Register("gcm_recover_tag", handleRecoverTag)
	Register("gcm_recover_tag_unverified", handleRecoverTagUnverified)
}

type forgeryMessageArgs struct {
	Ciphertext     string `json:"ciphertext"`
	AssociatedData string `json:"associated_data"`
	Tag            string `json:"tag,omitempty"`
}

func (m forgeryMessageArgs) message() (forgery.Message, error) {
	ct, err := base64.StdEncoding.DecodeString(m.Ciphertext)
	if err != nil {
		return forgery.Message{}, fmt.Errorf("decoding ciphertext: %w", err)
	}
	ad, err := base64.StdEncoding.DecodeString(m.AssociatedData)
	if err != nil {
		return forgery.Message{}, fmt.Errorf("decoding associated_data: %w", err)
	}
	return forgery.Message{Ciphertext: ct, AssociatedData: ad}, nil
}

func (m forgeryMessageArgs) tagged() (forgery.Tagged, error) {
	msg, err := m.message()
	if err != nil {
		return forgery.Tagged{}, err
	}
	tagBytes, err := base64.StdEncoding.DecodeString(m.Tag)
	if err != nil {
		return forgery.Tagged{}, fmt.Errorf("decoding tag: %w", err)
	}
	if len(tagBytes) != 16 {
		return forgery.Tagged{}, fmt.Errorf("tag must be 16 bytes, got %d", len(tagBytes))
	}
	var tag [16]byte
	copy(tag[:], tagBytes)
	return forgery.Tagged{Message: msg, Tag: tag}, nil
}

type recoverTagArgs struct {
	M1 forgeryMessageArgs `json:"m1"`
	M2 forgeryMessageArgs `json:"m2"`
	M3 forgeryMessageArgs `json:"m3"`
	M4 forgeryMessageArgs `json:"m4"`
}

type recoverTagResponse struct {
	Tag string `json:"tag"`
}

func handleRecoverTag(raw json.RawMessage) (any, error) {
	var args recoverTagArgs
	if err := decodeArgs("gcm_recover_tag", raw, &args); err != nil {
		return nil, err
	}

	m1, err := args.M1.tagged()
	if err != nil {
		return nil, err
	}
	m2, err := args.M2.tagged()
	if err != nil {
		return nil, err
	}
	m3, err := args.M3.tagged()
	if err != nil {
		return nil, err
	}
	m4, err := args.M4.message()
	if err != nil {
		return nil, err
	}

	tag, err := forgery.Recover(m1, m2, m3, m4)
	if err != nil {
		return nil, err
	}
	return recoverTagResponse{Tag: base64.StdEncoding.EncodeToString(tag[:])}, nil
}

type recoverTagUnverifiedArgs struct {
	M1 forgeryMessageArgs `json:"m1"`
	M2 forgeryMessageArgs `json:"m2"`
	M3 forgeryMessageArgs `json:"m3"`
}

type recoverTagUnverifiedResponse struct {
	Tag string `json:"tag"`
	H   string `json:"h"`
}

func handleRecoverTagUnverified(raw json.RawMessage) (any, error) {
	var args recoverTagUnverifiedArgs
	if err := decodeArgs("gcm_recover_tag_unverified", raw, &args); err != nil {
		return nil, err
	}

	m1, err := args.M1.tagged()
	if err != nil {
		return nil, err
	}
	m2, err := args.M2.tagged()
	if err != nil {
		return nil, err
	}
	m3, err := args.M3.message()
	if err != nil {
		return nil, err
	}

	tag, h, err := forgery.RecoverUnverified(m1, m2, m3)
	if err != nil {
		return nil, err
	}
	return recoverTagUnverifiedResponse{
		Tag: base64.StdEncoding.EncodeToString(tag[:]),
		H:   base64.StdEncoding.EncodeToString(h.GCMBytes()),
	}, nil
}
