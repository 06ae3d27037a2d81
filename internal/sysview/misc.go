package sysview

import (
	"github.com/nvm/sysinspect/internal/catalog"
	"github.com/nvm/sysinspect/internal/platform"
)

// MiscView lists facts about the process, the user and the machine. The
// full host name may need a network round trip and is resolved in the
// background.
type MiscView struct {
	*ListView
	provider platform.Provider
	lookup   *hostLookup
	hostRow  int
}

func NewMiscView(d Deps) *MiscView {
	v := &MiscView{
		ListView: newListView(CategoryMisc, d.Log, "Name", "Value"),
		provider: d.Provider,
		hostRow:  -1,
	}
	v.lookup = newHostLookup(v.log, d.Poster, d.HostLookupTimeout)
	for i, e := range catalog.MiscParams {
		idx := v.appendRow(i, e.Name)
		if e.Key == platform.MiscFullHostName {
			v.hostRow = idx
		}
	}
	v.Refresh()
	return v
}

func (v *MiscView) Refresh() {
	for i, r := range v.rows {
		if i == v.hostRow {
			continue
		}
		val, err := v.provider.Misc(catalog.MiscParams[r.ID].Key)
		if err != nil || val == "" {
			val = SentinelUnknown
		}
		v.setCell(i, columnValue, val)
	}
	if v.hostRow >= 0 {
		v.setCell(v.hostRow, columnValue, SentinelEvaluating)
		v.lookup.start(v.provider.FullHostName)
	}
	v.finishRefresh()
}

// Apply stores a background host name result. It reports whether the
// message was accepted; results of superseded lookups, results arriving
// after Close and results for a row no longer awaiting one are dropped.
func (v *MiscView) Apply(msg HostNameMsg) bool {
	if v.hostRow < 0 || !v.lookup.accepts(msg.Generation) {
		return false
	}
	if v.cell(v.hostRow, columnValue) != SentinelEvaluating {
		return false
	}
	if msg.Err != nil || msg.Value == "" {
		if msg.Err != nil {
			v.log.Error(msg.Err, "cannot resolve full host name")
		}
		v.setCell(v.hostRow, columnValue, SentinelUnknown)
		return true
	}
	v.setCell(v.hostRow, columnValue, msg.Value)
	return true
}

func (v *MiscView) Values(sep string) []string { return v.nameValueLines(sep) }

// Close cancels a pending host name lookup.
func (v *MiscView) Close() { v.lookup.close() }
