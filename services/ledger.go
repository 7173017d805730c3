package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yeremiapane/bar-pos/invoice"
	"github.com/yeremiapane/bar-pos/models"
	"github.com/yeremiapane/bar-pos/utils"
)

// SessionLedger owns the FREE -> OCCUPIED -> FREE cycle of a table.
type SessionLedger struct {
	DB        *gorm.DB
	locks     *KeyedMutex
	now       func() time.Time
	publisher InvoicePublisher
}

type TableRef struct {
	ID     uint `json:"id"`
	Number int  `json:"number"`
}

// ClosedSession is the reporting row of a finished session. The table number
// is joined in at query time.
type ClosedSession struct {
	ID            uint         `json:"id"`
	TableID       uint         `json:"tableId"`
	TableNumber   int          `json:"tableNumber"`
	TableHistory  TableRef     `json:"tableHistory"`
	InvoiceNumber string       `json:"invoiceNumber"`
	StartTime     time.Time    `json:"startTime"`
	EndTime       time.Time    `json:"endTime"`
	TotalAmount   models.Money `json:"totalAmount"`
}

type ClosedFilter struct {
	From *time.Time
	To   *time.Time
}

// OpenSession starts a session on a FREE table. Only one caller can win for a
// given table; the others get ErrInvalidState.
func (l *SessionLedger) OpenSession(ctx context.Context, tableID uint) (*models.Session, error) {
	ctx = context.WithoutCancel(ctx)

	unlock := l.locks.Lock(tableID)
	defer unlock()

	session := models.Session{TableID: tableID, Orders: []models.Order{}}
	err := l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := loadTable(tx, tableID, &table); err != nil {
			return err
		}
		if !table.Status.CanOpen() {
			return invalidStatef("table #%d is %s, only a FREE table can be opened", table.Number, table.Status)
		}

		session.StartTime = l.now()
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		if err := bumpTable(tx, &table, map[string]interface{}{
			"status":             models.TableOccupied,
			"current_session_id": session.ID,
		}); err != nil {
			return err
		}
		session.Table = &table
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"table_id":   tableID,
		"session_id": session.ID,
	}).Info("Session opened")
	return &session, nil
}

// CloseSession freezes the total, stamps the end time and frees the table, all
// in one transaction. On any error the table stays OCCUPIED with its session
// untouched. A session without orders closes with a zero total.
func (l *SessionLedger) CloseSession(ctx context.Context, tableID uint) (*models.Session, error) {
	ctx = context.WithoutCancel(ctx)

	session, err := l.closeLocked(ctx, tableID)
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"table_id":   tableID,
		"session_id": session.ID,
		"total":      session.TotalAmount.String(),
	}).Info("Session closed")

	l.publish(ctx, session)
	return session, nil
}

func (l *SessionLedger) closeLocked(ctx context.Context, tableID uint) (*models.Session, error) {
	unlock := l.locks.Lock(tableID)
	defer unlock()

	var session models.Session
	err := l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := loadTable(tx, tableID, &table); err != nil {
			return err
		}
		if !table.Status.CanClose() || table.CurrentSessionID == nil {
			return invalidStatef("table #%d is %s, only an OCCUPIED table can be closed", table.Number, table.Status)
		}

		if err := withLines(tx).First(&session, *table.CurrentSessionID).Error; err != nil {
			return fmt.Errorf("load session %d: %w", *table.CurrentSessionID, err)
		}
		if session.Closed() {
			return invalidStatef("session %d is already closed", session.ID)
		}

		end := l.now()
		total := session.ComputeTotal()

		res := tx.Model(&models.Session{}).
			Where("id = ? AND end_time IS NULL", session.ID).
			Updates(map[string]interface{}{"end_time": end, "total_amount": total})
		if res.Error != nil {
			return fmt.Errorf("close session %d: %w", session.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return invalidStatef("session %d is already closed", session.ID)
		}

		if err := bumpTable(tx, &table, map[string]interface{}{
			"status":             models.TableFree,
			"current_session_id": nil,
		}); err != nil {
			return err
		}

		session.EndTime = &end
		session.TotalAmount = total
		session.Table = &table
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// publish is advisory. The close has been committed already.
func (l *SessionLedger) publish(ctx context.Context, session *models.Session) {
	inv, err := invoice.FromSession(session)
	if err == nil {
		err = l.publisher.PublishInvoice(ctx, inv)
	}
	if err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"session_id": session.ID,
			"error":      err,
		}).Warn("Invoice publish failed")
	}
}

// GetSession returns a session, open or closed, with its lines and table.
func (l *SessionLedger) GetSession(ctx context.Context, id uint) (*models.Session, error) {
	var session models.Session
	if err := withLines(l.DB.WithContext(ctx)).First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("session %d not found", id)
		}
		return nil, fmt.Errorf("load session %d: %w", id, err)
	}
	if !session.Closed() {
		session.TotalAmount = session.ComputeTotal()
	}
	return &session, nil
}

// ListClosedSessions returns every ended session, most recently closed first.
func (l *SessionLedger) ListClosedSessions(ctx context.Context, f ClosedFilter) ([]ClosedSession, error) {
	q := l.DB.WithContext(ctx).
		Preload("Table", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("end_time IS NOT NULL")
	if f.From != nil {
		q = q.Where("end_time >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("end_time < ?", *f.To)
	}

	var sessions []models.Session
	if err := q.Order("end_time DESC").Order("id DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list closed sessions: %w", err)
	}

	out := make([]ClosedSession, 0, len(sessions))
	for _, s := range sessions {
		row := ClosedSession{
			ID:            s.ID,
			TableID:       s.TableID,
			InvoiceNumber: invoice.Number(s.ID, *s.EndTime),
			StartTime:     s.StartTime,
			EndTime:       *s.EndTime,
			TotalAmount:   s.TotalAmount,
		}
		if s.Table != nil {
			row.TableNumber = s.Table.Number
		}
		row.TableHistory = TableRef{ID: s.TableID, Number: row.TableNumber}
		out = append(out, row)
	}
	return out, nil
}
