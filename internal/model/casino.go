package model

// Jurisdiction tags. A submission's inferred jurisdiction is always one
// of these three labels.
const (
	JurisdictionUSA        = "USA Daily"
	JurisdictionCrypto     = "Crypto Daily"
	JurisdictionEverywhere = "Everywhere"
)

// Casino is one entry in the external casino registry. Read-only to the
// pipeline: a point-in-time lookup table refreshed independently.
type Casino struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	ResolvedDomain string `json:"resolved_domain" yaml:"resolved_domain"`
	SupportsSweeps bool   `json:"supports_us_sweeps" yaml:"supports_us_sweeps"`
	SupportsCrypto bool   `json:"supports_crypto" yaml:"supports_crypto"`
}
