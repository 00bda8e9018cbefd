package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"
)

var (
	quoteExistsPattern   = regexp.MustCompile(`SELECT count\(\*\) FROM .quotes. WHERE quote_id = \? AND delete_at IS NULL`)
	contactExistsPattern = regexp.MustCompile(`SELECT count\(\*\) FROM .contacts. WHERE contact_id = \? AND delete_at IS NULL`)
	latestRecordPattern  = regexp.MustCompile(`SELECT \* FROM .status_records. WHERE entity_kind = \? AND entity_id = \? ORDER BY record_id DESC`)
	historyPattern       = regexp.MustCompile(`SELECT \* FROM .status_records. WHERE entity_kind = \? AND entity_id = \? ORDER BY record_id ASC`)
	insertRecordPattern  = regexp.MustCompile(`INSERT INTO .status_records.`)
	tallyPattern         = regexp.MustCompile(`(?s)SELECT sr\.status AS status, COUNT\(\*\) AS total.*GROUP BY sr\.status`)
)

func existsStep(pattern *regexp.Regexp, id int, count int64) *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: pattern,
		args:    []driver.Value{int64(id)},
		columns: []string{"count"},
		rows:    [][]driver.Value{{count}},
	}
}

func latestStep(id int, rows ...[]driver.Value) *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: latestRecordPattern,
		args:    []driver.Value{"quote", int64(id)},
		columns: []string{"record_id", "status"},
		rows:    rows,
	}
}

func TestCurrentStatusDefaultsToPending(t *testing.T) {
	steps := []*queryStep{
		existsStep(quoteExistsPattern, 42, 1),
		latestStep(42),
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewQuoteStatusService(db)
	status, err := svc.CurrentStatus(42)
	if err != nil {
		t.Fatalf("CurrentStatus returned error: %v", err)
	}
	if status != StatusPending {
		t.Fatalf("expected pending for entity without records, got %s", status)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestCurrentStatusReadsLatestRecord(t *testing.T) {
	steps := []*queryStep{
		existsStep(quoteExistsPattern, 42, 1),
		latestStep(42, []driver.Value{int64(9), "quoted"}),
	}
	db, _, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	status, err := NewQuoteStatusService(db).CurrentStatus(42)
	if err != nil {
		t.Fatalf("CurrentStatus returned error: %v", err)
	}
	if status != StatusQuoted {
		t.Fatalf("expected quoted, got %s", status)
	}
}

func TestCurrentStatusMissingEntity(t *testing.T) {
	steps := []*queryStep{
		existsStep(quoteExistsPattern, 7, 0),
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewQuoteStatusService(db).CurrentStatus(7)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateStatusAppendsRecord(t *testing.T) {
	steps := []*queryStep{
		existsStep(quoteExistsPattern, 42, 1),
		latestStep(42), // no history yet, implicit pending
		{
			kind:    kindExec,
			pattern: insertRecordPattern,
			result:  scriptedResult{lastInsertID: 7, rowsAffected: 1},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	note := "called the client"
	record, err := NewQuoteStatusService(db).UpdateStatus(42, StatusProcessing, "admin@example.com", &note)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if record.RecordID != 7 {
		t.Errorf("expected record_id 7, got %d", record.RecordID)
	}
	if record.EntityKind != "quote" || record.EntityID != 42 {
		t.Errorf("unexpected entity reference: %s/%d", record.EntityKind, record.EntityID)
	}
	if record.Status != string(StatusProcessing) {
		t.Errorf("expected status processing, got %s", record.Status)
	}
	if record.ChangedBy != "admin@example.com" {
		t.Errorf("unexpected changed_by %s", record.ChangedBy)
	}
	if record.Note == nil || *record.Note != note {
		t.Errorf("note not preserved: %v", record.Note)
	}
	if record.OccurredAt.IsZero() {
		t.Error("occurred_at not set")
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	steps := []*queryStep{
		existsStep(quoteExistsPattern, 42, 1),
		latestStep(42, []driver.Value{int64(3), "converted"}),
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewQuoteStatusService(db).UpdateStatus(42, StatusProcessing, "admin@example.com", nil)
	var transitionErr *InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if transitionErr.From != StatusConverted || transitionErr.To != StatusProcessing {
		t.Errorf("error pair = %s -> %s, want converted -> processing", transitionErr.From, transitionErr.To)
	}
	// no insert step scripted: a rejected transition must not touch the log
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateStatusMissingEntity(t *testing.T) {
	steps := []*queryStep{
		existsStep(quoteExistsPattern, 99, 0),
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewQuoteStatusService(db).UpdateStatus(99, StatusProcessing, "admin@example.com", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestHistoryReturnsRecordsInInsertionOrder(t *testing.T) {
	steps := []*queryStep{
		existsStep(contactExistsPattern, 5, 1),
		{
			kind:    kindQuery,
			pattern: historyPattern,
			args:    []driver.Value{"contact", int64(5)},
			columns: []string{"record_id", "status"},
			rows: [][]driver.Value{
				{int64(1), "responded"},
				{int64(2), "closed"},
			},
		},
	}
	db, _, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	history, err := NewContactStatusService(db).History(5)
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 records, got %d", len(history))
	}
	if history[0].RecordID != 1 || history[0].Status != "responded" {
		t.Errorf("unexpected first record: %+v", history[0])
	}
	if history[1].RecordID != 2 || history[1].Status != "closed" {
		t.Errorf("unexpected second record: %+v", history[1])
	}
}

func TestBulkUpdateStatusIsolatesFailures(t *testing.T) {
	steps := []*queryStep{
		// id 1: does not exist
		existsStep(quoteExistsPattern, 1, 0),
		// id 2: pending, transition succeeds
		existsStep(quoteExistsPattern, 2, 1),
		latestStep(2),
		{
			kind:    kindExec,
			pattern: insertRecordPattern,
			result:  scriptedResult{lastInsertID: 11, rowsAffected: 1},
		},
		// id 3: already closed, transition rejected
		existsStep(quoteExistsPattern, 3, 1),
		latestStep(3, []driver.Value{int64(8), "closed"}),
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	outcomes := NewQuoteStatusService(db).BulkUpdateStatus([]int{1, 2, 3}, StatusProcessing, "admin@example.com", nil)
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}

	if outcomes[0].ErrorKind != "not_found" || outcomes[0].Record != nil {
		t.Errorf("unexpected outcome for missing id: %+v", outcomes[0])
	}
	if outcomes[1].Error != "" || outcomes[1].Record == nil || outcomes[1].Record.RecordID != 11 {
		t.Errorf("unexpected outcome for valid id: %+v", outcomes[1])
	}
	if outcomes[2].ErrorKind != "invalid_transition" || outcomes[2].Record != nil {
		t.Errorf("unexpected outcome for terminal id: %+v", outcomes[2])
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestStatisticsSumToEntityTotal(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT count\(\*\) FROM .quotes. WHERE delete_at IS NULL`),
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(5)}},
		},
		{
			kind:    kindQuery,
			pattern: tallyPattern,
			args:    []driver.Value{"quote"},
			columns: []string{"status", "total"},
			rows: [][]driver.Value{
				{"processing", int64(2)},
				{"closed", int64(1)},
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	tally, err := NewQuoteStatusService(db).Statistics()
	if err != nil {
		t.Fatalf("Statistics returned error: %v", err)
	}

	// the two unrecorded entities are implicitly pending
	if tally[StatusPending] != 2 {
		t.Errorf("pending = %d, want 2", tally[StatusPending])
	}
	if tally[StatusProcessing] != 2 || tally[StatusClosed] != 1 {
		t.Errorf("unexpected tally: %v", tally)
	}
	if tally[StatusQuoted] != 0 || tally[StatusConverted] != 0 {
		t.Errorf("expected explicit zero counts, got %v", tally)
	}

	var sum int64
	for _, st := range Statuses(KindQuote) {
		count, ok := tally[st]
		if !ok {
			t.Errorf("tally missing status %s", st)
		}
		sum += count
	}
	if sum != 5 {
		t.Errorf("tally sums to %d, want entity total 5", sum)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestStatusDistributionAppliesCutoff(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT count\(\*\) FROM .contacts. WHERE delete_at IS NULL AND create_at >= \?`),
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(1)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`(?s)SELECT sr\.status AS status.*e\.create_at >= \?.*GROUP BY sr\.status`),
			columns: []string{"status", "total"},
			rows:    [][]driver.Value{{"responded", int64(1)}},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	cutoff := time.Now().AddDate(0, 0, -30)
	tally, err := NewContactStatusService(db).StatusDistribution(&cutoff)
	if err != nil {
		t.Fatalf("StatusDistribution returned error: %v", err)
	}
	if tally[StatusResponded] != 1 || tally[StatusPending] != 0 {
		t.Errorf("unexpected distribution: %v", tally)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestCurrentStatusMapDefaultsToPending(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`(?s)SELECT sr\.entity_id AS entity_id, sr\.status AS status`),
			columns: []string{"entity_id", "status"},
			rows:    [][]driver.Value{{int64(2), "processing"}},
		},
	}
	db, _, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	statuses, err := NewQuoteStatusService(db).CurrentStatusMap([]int{1, 2})
	if err != nil {
		t.Fatalf("CurrentStatusMap returned error: %v", err)
	}
	if statuses[1] != StatusPending {
		t.Errorf("entity 1 = %s, want pending", statuses[1])
	}
	if statuses[2] != StatusProcessing {
		t.Errorf("entity 2 = %s, want processing", statuses[2])
	}
}

func TestEntityIDsWithCurrentStatusPendingIncludesUnrecorded(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`(?s)SELECT sr\.entity_id.*WHERE sr\.status = \?`),
			args:    []driver.Value{"quote", "pending"},
			columns: []string{"entity_id"},
			rows:    [][]driver.Value{{int64(3)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`(?s)SELECT e\.quote_id FROM quotes e.*NOT IN`),
			args:    []driver.Value{"quote"},
			columns: []string{"quote_id"},
			rows:    [][]driver.Value{{int64(4)}, {int64(5)}},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	ids, err := NewQuoteStatusService(db).EntityIDsWithCurrentStatus(StatusPending)
	if err != nil {
		t.Fatalf("EntityIDsWithCurrentStatus returned error: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %v", ids)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
