// Package state persists the resource identifiers a stack has created so
// later runs can reconcile and destroy without rediscovering everything.
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// CurrentVersion is the snapshot schema version this build writes.
const CurrentVersion = 1

// Resources holds the provider-side identifiers of a stack. Credentials are
// never stored here; tokens are fetched on demand during a run.
type Resources struct {
	NetworkID   int64  `json:"network_id,omitempty"`
	FirewallID  int64  `json:"firewall_id,omitempty"`
	SSHKeyID    int64  `json:"ssh_key_id,omitempty"`
	ServerID    int64  `json:"server_id,omitempty"`
	ServerIPv4  string `json:"server_ipv4,omitempty"`
	TunnelID    string `json:"tunnel_id,omitempty"`
	ZoneID      string `json:"zone_id,omitempty"`
	DNSRecordID string `json:"dns_record_id,omitempty"`
	Workflow    string `json:"workflow,omitempty"`
}

// Snapshot is one stack's persisted state.
type Snapshot struct {
	Version   int       `json:"version"`
	Stack     string    `json:"stack"`
	UpdatedAt time.Time `json:"updated_at"`
	Resources Resources `json:"resources"`
}

// NewSnapshot returns an empty snapshot for a stack.
func NewSnapshot(stack string) *Snapshot {
	return &Snapshot{Version: CurrentVersion, Stack: stack}
}

// Store loads and saves snapshots. Load returns (nil, nil) when no snapshot
// exists yet.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
	Delete(ctx context.Context) error
}

func marshalSnapshot(snap *Snapshot) ([]byte, error) {
	snap.Version = CurrentVersion
	snap.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return append(data, '\n'), nil
}

func unmarshalSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	if snap.Version > CurrentVersion {
		return nil, fmt.Errorf("state version %d is newer than this build supports (%d)", snap.Version, CurrentVersion)
	}
	return &snap, nil
}
