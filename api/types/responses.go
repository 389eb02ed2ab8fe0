package types

import "github.com/JackalLabs/harvester/farm"

type ErrorResponse struct {
	Error string `json:"error"`
}

type IndexResponse struct {
	Status   string   `json:"status"`
	Accounts []string `json:"accounts"`
	DryRun   bool     `json:"dry_run"`
}

type VersionResponse struct {
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	ChainID    string `json:"chain-id,omitempty"`
	HeadHeight uint32 `json:"head_height,omitempty"`
}

type AccountsResponse struct {
	Reports      []farm.Report `json:"reports"`
	SkippedTicks int64         `json:"skipped_ticks"`
}
