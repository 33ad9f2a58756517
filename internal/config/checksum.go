package config

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
)

type sweepChecksumPayload struct {
	Binary string    `json:"binary"`
	N      []int     `json:"n"`
	D      []float64 `json:"d"`
	Runs   int       `json:"runs"`
}

// SweepChecksum returns a short, stable checksum that identifies the measured
// sweep, independent of where its output and temporary files go.
//
// It computes MD5 over a canonical JSON representation and returns the first 6 hex
// characters (equivalent to `md5sum | cut -c1-6`).
func SweepChecksum(cfg *SweepConfig) (string, error) {
	if cfg == nil {
		return "", nil
	}

	payload := sweepChecksumPayload{
		Binary: cfg.Binary,
		N:      cfg.N,
		D:      cfg.D,
		Runs:   cfg.Runs,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	sum := md5.Sum(b)
	hexStr := hex.EncodeToString(sum[:])
	if len(hexStr) > 6 {
		hexStr = hexStr[:6]
	}
	return hexStr, nil
}
