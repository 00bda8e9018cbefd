package services

import (
	"fmt"
	"time"

	"charter-api/models"

	"gorm.io/gorm"
)

// kindTable binds an entity kind to the table its rows live in.
type kindTable struct {
	kind     EntityKind
	table    string
	idColumn string
}

var (
	quoteKind   = kindTable{kind: KindQuote, table: "quotes", idColumn: "quote_id"}
	contactKind = kindTable{kind: KindContact, table: "contacts", idColumn: "contact_id"}
)

// StatusService derives the current status of quotes or contacts from their
// append-only status history and appends new records on validated
// transitions. History rows are never updated or deleted.
//
// Concurrent updates against the same entity are not serialized: two racing
// calls can both validate against the same snapshot and both append. The
// later insert wins as current status and both attempts stay in the audit
// trail. Transitions are admin-triggered, so collisions are rare enough that
// a conditional append has not been added.
type StatusService struct {
	db   *gorm.DB
	kind kindTable
}

// NewQuoteStatusService returns a status service over the quotes table.
func NewQuoteStatusService(db *gorm.DB) *StatusService {
	return &StatusService{db: db, kind: quoteKind}
}

// NewContactStatusService returns a status service over the contacts table.
func NewContactStatusService(db *gorm.DB) *StatusService {
	return &StatusService{db: db, kind: contactKind}
}

// Kind reports which entity kind the service manages.
func (s *StatusService) Kind() EntityKind {
	return s.kind.kind
}

func (s *StatusService) entityExists(entityID int) (bool, error) {
	var count int64
	err := s.db.Table(s.kind.table).
		Where(fmt.Sprintf("%s = ? AND delete_at IS NULL", s.kind.idColumn), entityID).
		Count(&count).Error
	if err != nil {
		return false, &PersistenceError{Err: err}
	}
	return count > 0, nil
}

// latestStatus reads the most recently inserted record for the entity.
// Entities with no history are implicitly pending; no row is materialized
// for the initial state.
func (s *StatusService) latestStatus(entityID int) (Status, error) {
	var record models.StatusRecord
	err := s.db.Where("entity_kind = ? AND entity_id = ?", s.kind.kind, entityID).
		Order("record_id DESC").
		First(&record).Error
	if err == gorm.ErrRecordNotFound {
		return StatusPending, nil
	}
	if err != nil {
		return "", &PersistenceError{Err: err}
	}
	return Status(record.Status), nil
}

// CurrentStatus returns the entity's derived status. Side-effect-free.
func (s *StatusService) CurrentStatus(entityID int) (Status, error) {
	exists, err := s.entityExists(entityID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrNotFound
	}
	return s.latestStatus(entityID)
}

// History returns every status record for the entity, oldest first. Each
// call runs a fresh query.
func (s *StatusService) History(entityID int) ([]models.StatusRecord, error) {
	exists, err := s.entityExists(entityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	var records []models.StatusRecord
	err = s.db.Where("entity_kind = ? AND entity_id = ?", s.kind.kind, entityID).
		Order("record_id ASC").
		Find(&records).Error
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	return records, nil
}

// UpdateStatus validates the transition from the entity's current status and
// appends a new record. It returns ErrNotFound for missing entities and an
// InvalidTransitionError for moves the graph rejects. Persistence failures
// are not retried; the caller decides.
func (s *StatusService) UpdateStatus(entityID int, newStatus Status, changedBy string, note *string) (*models.StatusRecord, error) {
	exists, err := s.entityExists(entityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	current, err := s.latestStatus(entityID)
	if err != nil {
		return nil, err
	}

	if !IsValidTransition(s.kind.kind, current, newStatus) {
		return nil, &InvalidTransitionError{Kind: s.kind.kind, From: current, To: newStatus}
	}

	record := models.StatusRecord{
		EntityKind: string(s.kind.kind),
		EntityID:   entityID,
		Status:     string(newStatus),
		ChangedBy:  changedBy,
		Note:       note,
		OccurredAt: time.Now(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}
	return &record, nil
}

// BulkOutcome is the per-ID result of a bulk status update. Exactly one of
// Record and Error is set.
type BulkOutcome struct {
	EntityID  int                  `json:"entity_id"`
	Record    *models.StatusRecord `json:"record,omitempty"`
	Error     string               `json:"error,omitempty"`
	ErrorKind string               `json:"error_kind,omitempty"` // not_found|invalid_transition|persistence
}

// BulkUpdateStatus applies the same status change to each ID independently.
// A failure on one ID never aborts the rest; errors come back as data in the
// outcome slice. There is no transactional atomicity across the batch.
func (s *StatusService) BulkUpdateStatus(entityIDs []int, newStatus Status, changedBy string, note *string) []BulkOutcome {
	outcomes := make([]BulkOutcome, 0, len(entityIDs))
	for _, id := range entityIDs {
		record, err := s.UpdateStatus(id, newStatus, changedBy, note)
		if err != nil {
			outcomes = append(outcomes, BulkOutcome{
				EntityID:  id,
				Error:     err.Error(),
				ErrorKind: classifyError(err),
			})
			continue
		}
		outcomes = append(outcomes, BulkOutcome{EntityID: id, Record: record})
	}
	return outcomes
}

func classifyError(err error) string {
	if err == ErrNotFound {
		return "not_found"
	}
	if _, ok := err.(*InvalidTransitionError); ok {
		return "invalid_transition"
	}
	return "persistence"
}

// Statistics tallies current status across every entity of the kind.
// Entities with no history count as pending, so the counts always sum to the
// total entity count.
func (s *StatusService) Statistics() (map[Status]int64, error) {
	return s.statusTally(nil)
}

// StatusDistribution is Statistics restricted to entities created at or
// after the given cutoff. A nil cutoff means all time.
func (s *StatusService) StatusDistribution(since *time.Time) (map[Status]int64, error) {
	return s.statusTally(since)
}

func (s *StatusService) statusTally(since *time.Time) (map[Status]int64, error) {
	totalQuery := s.db.Table(s.kind.table).Where("delete_at IS NULL")
	if since != nil {
		totalQuery = totalQuery.Where("create_at >= ?", *since)
	}
	var total int64
	if err := totalQuery.Count(&total).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}

	query := fmt.Sprintf(`SELECT sr.status AS status, COUNT(*) AS total
		FROM status_records sr
		JOIN (SELECT entity_id, MAX(record_id) AS record_id
			FROM status_records WHERE entity_kind = ? GROUP BY entity_id) latest
			ON sr.record_id = latest.record_id
		JOIN %s e ON e.%s = sr.entity_id
		WHERE e.delete_at IS NULL`, s.kind.table, s.kind.idColumn)
	args := []interface{}{string(s.kind.kind)}
	if since != nil {
		query += " AND e.create_at >= ?"
		args = append(args, *since)
	}
	query += " GROUP BY sr.status"

	var rows []struct {
		Status string
		Total  int64
	}
	if err := s.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}

	tally := make(map[Status]int64, len(kindStatuses[s.kind.kind]))
	for _, st := range Statuses(s.kind.kind) {
		tally[st] = 0
	}
	var recorded int64
	for _, row := range rows {
		tally[Status(row.Status)] = row.Total
		recorded += row.Total
	}
	// entities without any record are implicitly pending
	tally[StatusPending] += total - recorded
	return tally, nil
}

// CurrentStatusMap resolves the current status for each given entity ID in
// one query, defaulting every entry to pending. Used by list endpoints to
// avoid a per-row lookup.
func (s *StatusService) CurrentStatusMap(entityIDs []int) (map[int]Status, error) {
	result := make(map[int]Status, len(entityIDs))
	for _, id := range entityIDs {
		result[id] = StatusPending
	}
	if len(entityIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		EntityID int
		Status   string
	}
	err := s.db.Raw(`SELECT sr.entity_id AS entity_id, sr.status AS status
		FROM status_records sr
		JOIN (SELECT entity_id, MAX(record_id) AS record_id
			FROM status_records WHERE entity_kind = ? AND entity_id IN ? GROUP BY entity_id) latest
			ON sr.record_id = latest.record_id`,
		string(s.kind.kind), entityIDs).Scan(&rows).Error
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	for _, row := range rows {
		result[row.EntityID] = Status(row.Status)
	}
	return result, nil
}

// EntityIDsWithCurrentStatus returns the IDs of entities whose derived
// current status matches. For pending this includes entities with no history
// at all.
func (s *StatusService) EntityIDsWithCurrentStatus(status Status) ([]int, error) {
	var ids []int
	err := s.db.Raw(`SELECT sr.entity_id
		FROM status_records sr
		JOIN (SELECT entity_id, MAX(record_id) AS record_id
			FROM status_records WHERE entity_kind = ? GROUP BY entity_id) latest
			ON sr.record_id = latest.record_id
		WHERE sr.status = ?`,
		string(s.kind.kind), string(status)).Scan(&ids).Error
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}

	if status == StatusPending {
		var unrecorded []int
		err := s.db.Raw(fmt.Sprintf(`SELECT e.%s FROM %s e
			WHERE e.delete_at IS NULL
			AND e.%s NOT IN (SELECT entity_id FROM status_records WHERE entity_kind = ?)`,
			s.kind.idColumn, s.kind.table, s.kind.idColumn),
			string(s.kind.kind)).Scan(&unrecorded).Error
		if err != nil {
			return nil, &PersistenceError{Err: err}
		}
		ids = append(ids, unrecorded...)
	}
	return ids, nil
}
