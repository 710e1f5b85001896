// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, con semántica transaccional por snapshot. Soporte de tests y de
// desarrollo sin PostgreSQL.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Paqueteria-api/internal/domain"
	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
	"github.com/jhoicas/Paqueteria-api/internal/domain/repository"
)

// Store contenedor de todos los mapas. Un mutex global serializa las
// operaciones: la concurrencia fina no es objetivo de este adaptador.
type Store struct {
	mu        sync.Mutex
	locations map[string]entity.Location
	users     map[string]entity.User
	grns      map[string]entity.GRN
	lines     map[string]entity.GRNLine
	otps      map[string]entity.OTP
	dns       map[string]entity.DN
	inwards   map[string]entity.WarehouseInward
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		locations: make(map[string]entity.Location),
		users:     make(map[string]entity.User),
		grns:      make(map[string]entity.GRN),
		lines:     make(map[string]entity.GRNLine),
		otps:      make(map[string]entity.OTP),
		dns:       make(map[string]entity.DN),
		inwards:   make(map[string]entity.WarehouseInward),
	}
}

// Run implementa ports.TxRunner: toma un snapshot de todos los mapas, ejecuta
// fn con los repositorios del almacén y, si fn falla, restaura el snapshot.
func (s *Store) Run(_ context.Context, fn func(
	grnRepo repository.GRNRepository,
	lineRepo repository.LineRepository,
	otpRepo repository.OTPRepository,
	dnRepo repository.DNRepository,
	inwardRepo repository.WarehouseInwardRepository,
) error) error {
	snap := s.snapshot()
	err := fn(s.GRNs(), s.Lines(), s.OTPs(), s.DNs(), s.Inwards())
	if err != nil {
		s.restore(snap)
	}
	return err
}

type snapshot struct {
	locations map[string]entity.Location
	users     map[string]entity.User
	grns      map[string]entity.GRN
	lines     map[string]entity.GRNLine
	otps      map[string]entity.OTP
	dns       map[string]entity.DN
	inwards   map[string]entity.WarehouseInward
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		locations: copyMap(s.locations),
		users:     copyMap(s.users),
		grns:      copyMap(s.grns),
		lines:     copyMap(s.lines),
		otps:      copyMap(s.otps),
		dns:       copyMap(s.dns),
		inwards:   copyMap(s.inwards),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = snap.locations
	s.users = snap.users
	s.grns = snap.grns
	s.lines = snap.lines
	s.otps = snap.otps
	s.dns = snap.dns
	s.inwards = snap.inwards
}

// Accessors de repositorios.

func (s *Store) Locations() repository.LocationRepository         { return &locationRepo{s} }
func (s *Store) Users() repository.UserRepository                 { return &userRepo{s} }
func (s *Store) GRNs() repository.GRNRepository                   { return &grnRepo{s} }
func (s *Store) Lines() repository.LineRepository                 { return &lineRepo{s} }
func (s *Store) OTPs() repository.OTPRepository                   { return &otpRepo{s} }
func (s *Store) DNs() repository.DNRepository                     { return &dnRepo{s} }
func (s *Store) Inwards() repository.WarehouseInwardRepository    { return &inwardRepo{s} }

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ── Location ──────────────────────────────────────────────────────────────────

type locationRepo struct{ s *Store }

func (r *locationRepo) Create(loc *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[loc.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.locations[loc.ID] = *loc
	return nil
}

func (r *locationRepo) GetByID(id string) (*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	loc, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	return &loc, nil
}

func (r *locationRepo) List() ([]*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Location, 0, len(r.s.locations))
	for id := range r.s.locations {
		loc := r.s.locations[id]
		out = append(out, &loc)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// ── User ──────────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id := range r.s.users {
		if r.s.users[id].Email == email {
			u := r.s.users[id]
			return &u, nil
		}
	}
	return nil, nil
}

// ── GRN ───────────────────────────────────────────────────────────────────────

type grnRepo struct{ s *Store }

func (r *grnRepo) Create(grn *entity.GRN) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.grns[grn.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.grns[grn.ID] = *grn
	return nil
}

func (r *grnRepo) GetByID(id string) (*entity.GRN, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.grns[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (r *grnRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.grns[id]; !ok {
		return domain.ErrNotFound
	}
	for lineID, line := range r.s.lines {
		if line.GRNID != id {
			continue
		}
		delete(r.s.lines, lineID)
		for wiID, wi := range r.s.inwards {
			if wi.GRNLineID == lineID {
				delete(r.s.inwards, wiID)
			}
		}
	}
	for otpID, o := range r.s.otps {
		if o.GRNID == id {
			delete(r.s.otps, otpID)
		}
	}
	delete(r.s.grns, id)
	return nil
}

func (r *grnRepo) List(filter repository.GRNFilter) ([]*entity.GRN, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.GRN, 0)
	for id := range r.s.grns {
		g := r.s.grns[id]
		if filter.LocationID != "" && g.DeliveryLocationID != filter.LocationID {
			continue
		}
		if filter.Courier != "" || filter.ParcelType != "" {
			if !r.anyLineMatches(g.ID, filter.Courier, filter.ParcelType) {
				continue
			}
		}
		if filter.Status != "" {
			totals := r.totalsLocked(g.ID)
			if filter.Status == "delivered" && !totals.IsDelivered() {
				continue
			}
			// pending exige al menos una línea sin DN: un GRN sin líneas
			// (p. ej. vaciado por un traslado) no está pendiente.
			if filter.Status == "pending" && totals.DeliveredLines == totals.TotalLines {
				continue
			}
		}
		out = append(out, &g)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *grnRepo) anyLineMatches(grnID, courier, parcelType string) bool {
	for _, line := range r.s.lines {
		if line.GRNID != grnID {
			continue
		}
		if courier != "" && line.CourierName != courier {
			continue
		}
		if parcelType != "" && line.ParcelType != parcelType {
			continue
		}
		return true
	}
	return false
}

func (r *grnRepo) Totals(grnID string) (entity.GRNTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.totalsLocked(grnID), nil
}

func (r *grnRepo) totalsLocked(grnID string) entity.GRNTotals {
	var totals entity.GRNTotals
	for lineID, line := range r.s.lines {
		if line.GRNID != grnID {
			continue
		}
		totals.TotalLines++
		for _, dn := range r.s.dns {
			if dn.GRNLineID == lineID {
				totals.DeliveredLines++
				break
			}
		}
		for _, wi := range r.s.inwards {
			if wi.GRNLineID == lineID {
				totals.InwardedLines++
				break
			}
		}
	}
	return totals
}

// ── GRNLine ───────────────────────────────────────────────────────────────────

type lineRepo struct{ s *Store }

func (r *lineRepo) Create(line *entity.GRNLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.lines[line.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.lines[line.ID] = *line
	return nil
}

func (r *lineRepo) GetByID(id string) (*entity.GRNLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lines[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *lineRepo) ListByGRN(grnID string) ([]*entity.GRNLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.listByGRNLocked(grnID), nil
}

func (r *lineRepo) listByGRNLocked(grnID string) []*entity.GRNLine {
	out := make([]*entity.GRNLine, 0)
	for id := range r.s.lines {
		if r.s.lines[id].GRNID != grnID {
			continue
		}
		l := r.s.lines[id]
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LineNumber != out[j].LineNumber {
			return out[i].LineNumber < out[j].LineNumber
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *lineRepo) Reassign(lineID, destGRNID string, lineNumber int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lines[lineID]
	if !ok {
		return domain.ErrNotFound
	}
	l.GRNID = destGRNID
	l.LineNumber = lineNumber
	r.s.lines[lineID] = l
	return nil
}

func (r *lineRepo) Renumber(grnID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for n, line := range r.listByGRNLocked(grnID) {
		l := r.s.lines[line.ID]
		l.LineNumber = n + 1
		r.s.lines[line.ID] = l
	}
	return nil
}

// ── OTP ───────────────────────────────────────────────────────────────────────

type otpRepo struct{ s *Store }

// validCodeTakenLocked replica el índice único parcial sobre (code) WHERE valid.
func (r *otpRepo) validCodeTakenLocked(code, excludeID string) bool {
	for id, o := range r.s.otps {
		if id == excludeID {
			continue
		}
		if o.Valid && o.Code == code {
			return true
		}
	}
	return false
}

func (r *otpRepo) Create(otp *entity.OTP) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.otps[otp.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, o := range r.s.otps {
		if o.GRNID == otp.GRNID {
			return domain.ErrDuplicate
		}
	}
	if otp.Valid && r.validCodeTakenLocked(otp.Code, otp.ID) {
		return domain.ErrDuplicate
	}
	r.s.otps[otp.ID] = *otp
	return nil
}

func (r *otpRepo) GetByGRN(grnID string) (*entity.OTP, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id := range r.s.otps {
		if r.s.otps[id].GRNID == grnID {
			o := r.s.otps[id]
			return &o, nil
		}
	}
	return nil, nil
}

func (r *otpRepo) GetValidByCode(code string) (*entity.OTP, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id := range r.s.otps {
		if r.s.otps[id].Valid && r.s.otps[id].Code == code {
			o := r.s.otps[id]
			return &o, nil
		}
	}
	return nil, nil
}

func (r *otpRepo) Update(otp *entity.OTP) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.otps[otp.ID]; !ok {
		return domain.ErrNotFound
	}
	if otp.Valid && r.validCodeTakenLocked(otp.Code, otp.ID) {
		return domain.ErrDuplicate
	}
	r.s.otps[otp.ID] = *otp
	return nil
}

// ── DN ────────────────────────────────────────────────────────────────────────

type dnRepo struct{ s *Store }

func (r *dnRepo) Create(dn *entity.DN) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.dns[dn.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.dns {
		if existing.GRNLineID == dn.GRNLineID {
			return domain.ErrDuplicate
		}
	}
	r.s.dns[dn.ID] = *dn
	return nil
}

func (r *dnRepo) GetByLine(lineID string) (*entity.DN, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id := range r.s.dns {
		if r.s.dns[id].GRNLineID == lineID {
			dn := r.s.dns[id]
			return &dn, nil
		}
	}
	return nil, nil
}

func (r *dnRepo) List(filter repository.DNFilter) ([]*entity.DN, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.DN, 0)
	for id := range r.s.dns {
		dn := r.s.dns[id]
		line, ok := r.s.lines[dn.GRNLineID]
		if ok {
			if filter.Courier != "" && line.CourierName != filter.Courier {
				continue
			}
			if filter.ParcelType != "" && line.ParcelType != filter.ParcelType {
				continue
			}
			if filter.LocationID != "" {
				grn, ok := r.s.grns[line.GRNID]
				if !ok || grn.DeliveryLocationID != filter.LocationID {
					continue
				}
			}
		} else if filter.LocationID != "" || filter.Courier != "" || filter.ParcelType != "" {
			continue
		}
		out = append(out, &dn)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, filter.Limit, filter.Offset), nil
}

// ── WarehouseInward ───────────────────────────────────────────────────────────

type inwardRepo struct{ s *Store }

func (r *inwardRepo) Create(w *entity.WarehouseInward) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.inwards[w.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.inwards {
		if existing.GRNLineID == w.GRNLineID {
			return domain.ErrDuplicate
		}
	}
	r.s.inwards[w.ID] = *w
	return nil
}

func (r *inwardRepo) GetByID(id string) (*entity.WarehouseInward, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.inwards[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *inwardRepo) GetByLine(lineID string) (*entity.WarehouseInward, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id := range r.s.inwards {
		if r.s.inwards[id].GRNLineID == lineID {
			w := r.s.inwards[id]
			return &w, nil
		}
	}
	return nil, nil
}

func (r *inwardRepo) Update(w *entity.WarehouseInward) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.inwards[w.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.inwards[w.ID] = *w
	return nil
}

func (r *inwardRepo) ListByStage(locationID string, stage entity.Stage, limit, offset int) ([]*entity.WarehouseInward, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.WarehouseInward, 0)
	for id := range r.s.inwards {
		w := r.s.inwards[id]
		if w.Stage() != stage {
			continue
		}
		if locationID != "" {
			line, ok := r.s.lines[w.GRNLineID]
			if !ok {
				continue
			}
			grn, ok := r.s.grns[line.GRNID]
			if !ok || grn.DeliveryLocationID != locationID {
				continue
			}
		}
		out = append(out, &w)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].InwardedAt.Equal(out[j].InwardedAt) {
			return out[i].InwardedAt.Before(out[j].InwardedAt)
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, limit, offset), nil
}
