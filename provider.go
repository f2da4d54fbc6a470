package main

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"sigs.k8s.io/external-dns/endpoint"
	"sigs.k8s.io/external-dns/plan"

	"github.com/lachlan2k/hostie/hostsfile"
)

const ttl = 10

var labels = map[string]string{}

// HostsfilesProvider serves the hosts table to external-dns. Every request
// re-reads the backend; the table is never cached between requests.
type HostsfilesProvider struct {
	lock      sync.Mutex
	persister HostsfilePersister
	editor    *hostsfile.Editor
}

func NewHostsfilesProvider(persister HostsfilePersister, editor *hostsfile.Editor) *HostsfilesProvider {
	return &HostsfilesProvider{persister: persister, editor: editor}
}

func recordType(address string) string {
	if strings.Contains(address, ":") {
		return endpoint.RecordTypeAAAA
	}
	return endpoint.RecordTypeA
}

func supported(e *endpoint.Endpoint) bool {
	return e.RecordType == endpoint.RecordTypeA || e.RecordType == endpoint.RecordTypeAAAA
}

func (h *HostsfilesProvider) Records(ctx context.Context) ([]*endpoint.Endpoint, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	table, err := h.load(ctx)
	if err != nil {
		return nil, err
	}

	type key struct{ host, typ string }
	entries := lo.Filter(hostsfile.List(table), func(m hostsfile.Mapping, _ int) bool {
		return !h.editor.IsProtected(m.Hostname)
	})
	grouped := lo.GroupBy(entries, func(m hostsfile.Mapping) key {
		return key{m.Hostname, recordType(m.Address)}
	})
	order := lo.Uniq(lo.Map(entries, func(m hostsfile.Mapping, _ int) key {
		return key{m.Hostname, recordType(m.Address)}
	}))

	records := make([]*endpoint.Endpoint, 0, len(order))
	for _, k := range order {
		records = append(records, &endpoint.Endpoint{
			DNSName: k.host,
			Targets: lo.Map(grouped[k], func(m hostsfile.Mapping, _ int) string {
				return m.Address
			}),
			RecordType:       k.typ,
			SetIdentifier:    "",
			RecordTTL:        ttl,
			Labels:           labels,
			ProviderSpecific: nil,
		})
	}

	return records, nil
}

// Caller must hold lock
func (h *HostsfilesProvider) load(ctx context.Context) (hostsfile.Table, error) {
	table, err := load(ctx, h.persister)
	if kind, ok := ioErrorKind(err); ok && kind == NotFound {
		log.Warn().Err(err).Msg("hosts file missing, serving no records")
		return hostsfile.Table{}, nil
	}
	return table, err
}

// Caller must hold lock
func (h *HostsfilesProvider) insert(t hostsfile.Table, e *endpoint.Endpoint) (hostsfile.Table, bool) {
	if !supported(e) {
		log.Warn().Str("type", e.RecordType).Str("name", e.DNSName).Msg("only A and AAAA records are supported")
		return t, false
	}
	if len(e.Targets) == 0 {
		log.Warn().Str("name", e.DNSName).Msg("endpoint contained no targets")
		return t, false
	}
	if len(e.Targets) > 1 {
		log.Warn().Str("name", e.DNSName).Strs("targets", e.Targets).Msg("hostnames are unique, only the first target is kept")
	}

	out, err := h.editor.Add(t, e.Targets[0], e.DNSName)
	if err != nil {
		log.Warn().Err(err).Str("name", e.DNSName).Msg("skipping create")
		return t, false
	}
	return out, true
}

// Caller must hold lock
func (h *HostsfilesProvider) remove(t hostsfile.Table, e *endpoint.Endpoint) (hostsfile.Table, bool) {
	changed := false
	for _, target := range e.Targets {
		out, err := h.editor.Remove(t, target, e.DNSName)
		if err != nil {
			log.Warn().Err(err).Str("name", e.DNSName).Str("target", target).Msg("skipping delete")
			continue
		}
		t = out
		changed = true
	}
	return t, changed
}

func (h *HostsfilesProvider) ApplyChanges(ctx context.Context, changes *plan.Changes) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	return mutate(ctx, h.persister, func(t hostsfile.Table) (hostsfile.Table, error) {
		changed := false
		apply := func(out hostsfile.Table, ok bool) {
			t = out
			changed = changed || ok
		}

		for _, toDelete := range changes.Delete {
			log.Info().Str("endpoint", toDelete.String()).Msg("deleting endpoint")
			apply(h.remove(t, toDelete))
		}

		// We get UpdateOld of what to remove and UpdateNew of what to add.
		for i, old := range changes.UpdateOld {
			log.Info().Int("index", i).Str("endpoint", old.String()).Msg("removing existing endpoint for update")
			apply(h.remove(t, old))
		}

		for _, toCreate := range changes.Create {
			log.Info().Str("endpoint", toCreate.String()).Msg("creating endpoint")
			apply(h.insert(t, toCreate))
		}
		for i, toUpdate := range changes.UpdateNew {
			log.Info().Int("index", i).Str("endpoint", toUpdate.String()).Msg("updating endpoint")
			apply(h.insert(t, toUpdate))
		}

		if !changed {
			return nil, errUnchanged
		}
		return t, nil
	})
}

func (h *HostsfilesProvider) AdjustEndpoints(endpoints []*endpoint.Endpoint) ([]*endpoint.Endpoint, error) {
	for _, endpoint := range endpoints {
		endpoint.RecordTTL = ttl
		endpoint.Labels = labels
	}

	return endpoints, nil
}

type domainFilter struct{}

func (domainFilter) Match(domain string) bool {
	return true
}

func (h *HostsfilesProvider) GetDomainFilter() endpoint.DomainFilterInterface {
	return &domainFilter{}
}
