package discovery

import (
	"github.com/displayctl/ddc-go/pkg/display"
	"github.com/displayctl/ddc-go/pkg/identity"
	"github.com/displayctl/ddc-go/pkg/log"
)

// entry is a display being assembled during a merge.
type entry struct {
	candidate
	alternates []display.Alternate
}

// merge collapses candidates that reach the same display, visiting
// backends in configuration order. Backend failures are recorded in res.
func (c *Coordinator) merge(probes []probe, res *Result) []*entry {
	var entries []*entry
	index := make(map[identity.Key]*entry)

	for _, p := range probes {
		if p.err != nil {
			res.Failures = append(res.Failures, BackendFailure{Backend: p.backend, Err: p.err})
			c.logger.Warn("backend enumeration failed", "backend", p.backend, "error", p.err)
			c.logDiscovery(p.backend, &log.DiscoveryEvent{Action: log.DiscoveryFailed})
			continue
		}

		for _, cand := range p.candidates {
			if !cand.identity.Mergeable() {
				entries = append(entries, c.add(cand))
				continue
			}

			key := cand.identity.Key()
			existing, ok := index[key]
			if !ok {
				e := c.add(cand)
				index[key] = e
				entries = append(entries, e)
				continue
			}

			if !existing.conn.Valid() {
				c.replace(existing, cand)
				continue
			}
			c.duplicate(existing, cand)
		}
	}
	return entries
}

func (c *Coordinator) add(cand candidate) *entry {
	c.logDiscovery(cand.backend, &log.DiscoveryEvent{
		Action:       log.DiscoveryAdded,
		ConnectionID: cand.id,
		Identity:     identityString(cand.identity),
	})
	return &entry{candidate: cand}
}

// replace swaps a stale connection for a newer one reaching the same
// display.
func (c *Coordinator) replace(existing *entry, cand candidate) {
	c.logger.Info("replacing stale connection",
		"backend", existing.backend, "connection", existing.id,
		"replacement_backend", cand.backend, "replacement", cand.id)
	c.logDiscovery(cand.backend, &log.DiscoveryEvent{
		Action:       log.DiscoveryReplaced,
		ConnectionID: cand.id,
		Identity:     identityString(cand.identity),
	})

	existing.conn.Close()
	cand.identity.UpdateFrom(existing.identity)
	existing.candidate = cand
}

// duplicate drops a second connection to a display already collected and
// remembers it as an alternate.
func (c *Coordinator) duplicate(existing *entry, cand candidate) {
	c.logger.Info("dropping duplicate connection",
		"display", existing.identity.String(),
		"backend", cand.backend, "connection", cand.id)
	c.logDiscovery(cand.backend, &log.DiscoveryEvent{
		Action:       log.DiscoveryDuplicate,
		ConnectionID: cand.id,
		Identity:     identityString(cand.identity),
	})

	cand.conn.Close()
	existing.identity.UpdateFrom(cand.identity)
	existing.alternates = append(existing.alternates, display.Alternate{
		Backend:      cand.backend,
		ConnectionID: cand.id,
	})
}

func identityString(id *identity.Identity) string {
	if id == nil {
		return ""
	}
	return id.String()
}
