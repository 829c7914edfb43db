// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	TimeLimit    int
	Words        int
	LineWidth    int
	VisibleLines int
	WordListPath string
}

// LedgerConfig defines where scores are minted and read from.
type LedgerConfig struct {
	Backend        string
	NodeURL        string
	Network        string
	ExplorerURL    string
	PackageID      string
	Module         string
	Function       string
	StructName     string
	GasBudget      int64
	CLIPath        string
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
	RequestTimeout time.Duration
}

// StructType returns the fully qualified Move type of minted scores.
func (c LedgerConfig) StructType() string {
	return c.PackageID + "::" + c.Module + "::" + c.StructName
}

// Stats is the result of a finished typing test.
type Stats struct {
	WPM      int `json:"wpm" yaml:"wpm"`
	Accuracy int `json:"accuracy" yaml:"accuracy"`
}

// ScoreRecord is a minted score owned by the connected identity.
type ScoreRecord struct {
	ID       string `json:"id" yaml:"id"`
	WPM      int    `json:"wpm" yaml:"wpm"`
	Accuracy int    `json:"accuracy" yaml:"accuracy"`
}

// Receipt describes a confirmed mint.
type Receipt struct {
	Digest   string
	ObjectID string
}
