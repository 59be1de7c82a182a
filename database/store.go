package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"strings"
	"time"

	"gls-plugin/config"
	"gls-plugin/service"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Store struct {
	DB *sql.DB
}

func NewStore(cfg config.Config) (*Store, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "db connection failed")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "db ping failed")
	}

	store := &Store{DB: db}
	if err := store.ensureTables(); err != nil {
		return nil, err
	}

	log.Println("Connected to MySQL")
	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

func (s *Store) ensureTables() error {
	if err := s.ensureLabelRecordsTable(); err != nil {
		return err
	}
	if err := s.ensureTrackingNumbersTable(); err != nil {
		return err
	}
	return s.ensureShipmentSnapshotsTable()
}

func (s *Store) ensureLabelRecordsTable() error {
	_, err := s.DB.Exec(`
		CREATE TABLE IF NOT EXISTS label_records (
			id VARCHAR(64) PRIMARY KEY,
			batch_id VARCHAR(64) NOT NULL,
			shipment_id VARCHAR(255) NOT NULL,
			parcel_numbers TEXT NOT NULL,
			parcel_ids TEXT NOT NULL,
			label_path VARCHAR(512) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_label_records_shipment (shipment_id),
			KEY idx_label_records_batch (batch_id)
		)
	`)
	return errors.Wrap(err, "ensure label_records")
}

func (s *Store) ensureTrackingNumbersTable() error {
	_, err := s.DB.Exec(`
		CREATE TABLE IF NOT EXISTS tracking_numbers (
			shipment_id VARCHAR(255) PRIMARY KEY,
			tracking_number VARCHAR(255) NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)
	`)
	return errors.Wrap(err, "ensure tracking_numbers")
}

func (s *Store) ensureShipmentSnapshotsTable() error {
	_, err := s.DB.Exec(`
		CREATE TABLE IF NOT EXISTS shipment_snapshots (
			shipment_id VARCHAR(255) PRIMARY KEY,
			payload JSON NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)
	`)
	return errors.Wrap(err, "ensure shipment_snapshots")
}

type LabelRecord struct {
	ID            string
	BatchID       string
	ShipmentID    string
	ParcelNumbers []string
	ParcelIDs     []int64
	LabelPath     string
	CreatedAt     time.Time
}

// SaveAssignments persists one record per labeled shipment. BatchID
// ties the records of one wire call together; LabelPath points at the
// stored label blob shared by the batch.
func (s *Store) SaveAssignments(batchID, labelPath string, assignments []service.LabelAssignment) error {
	for _, assignment := range assignments {
		record := LabelRecord{
			ID:            uuid.NewString(),
			BatchID:       batchID,
			ShipmentID:    assignment.ShipmentID,
			ParcelNumbers: assignment.ParcelNumbers,
			ParcelIDs:     assignment.ParcelIDs,
			LabelPath:     labelPath,
		}
		if err := s.SaveLabelRecord(record); err != nil {
			return err
		}
		if len(assignment.ParcelNumbers) > 0 {
			if err := s.SaveTrackingNumber(assignment.ShipmentID, assignment.ParcelNumbers[0]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Store) SaveLabelRecord(record LabelRecord) error {
	parcelNumbers, err := json.Marshal(record.ParcelNumbers)
	if err != nil {
		return errors.Wrap(err, "marshal parcel numbers")
	}
	parcelIDs, err := json.Marshal(record.ParcelIDs)
	if err != nil {
		return errors.Wrap(err, "marshal parcel ids")
	}

	_, err = s.DB.Exec(`
		INSERT INTO label_records (id, batch_id, shipment_id, parcel_numbers, parcel_ids, label_path)
		VALUES (?, ?, ?, ?, ?, ?)
	`, record.ID, record.BatchID, record.ShipmentID, string(parcelNumbers), string(parcelIDs), record.LabelPath)
	return errors.Wrap(err, "insert label record")
}

func (s *Store) SaveTrackingNumber(shipmentID, trackingNumber string) error {
	shipmentID = strings.TrimSpace(shipmentID)
	trackingNumber = strings.TrimSpace(trackingNumber)
	if shipmentID == "" || trackingNumber == "" {
		return errors.New("shipment id and tracking number are required")
	}
	_, err := s.DB.Exec(`
		INSERT INTO tracking_numbers (shipment_id, tracking_number)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE tracking_number = VALUES(tracking_number)
	`, shipmentID, trackingNumber)
	return errors.Wrap(err, "upsert tracking number")
}

// LoadTrackingNumber returns the stored tracking number for a
// shipment, or empty when none exists. Callers use it to skip
// regenerating labels for already-labeled shipments.
func (s *Store) LoadTrackingNumber(shipmentID string) (string, error) {
	var trackingNumber string
	err := s.DB.QueryRow(`
		SELECT tracking_number FROM tracking_numbers WHERE shipment_id = ?
	`, strings.TrimSpace(shipmentID)).Scan(&trackingNumber)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "load tracking number")
	}
	return trackingNumber, nil
}

// SaveShipmentSnapshot stores the order pipeline's view of a shipment,
// including its saved service overrides and print preferences. Batch
// label creation reads these back through LoadShipment.
func (s *Store) SaveShipmentSnapshot(shipment service.Shipment) error {
	if strings.TrimSpace(shipment.ID) == "" {
		return errors.New("shipment snapshot missing id")
	}
	payload, err := json.Marshal(shipment)
	if err != nil {
		return errors.Wrap(err, "marshal shipment snapshot")
	}
	_, err = s.DB.Exec(`
		INSERT INTO shipment_snapshots (shipment_id, payload)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload)
	`, strings.TrimSpace(shipment.ID), string(payload))
	return errors.Wrap(err, "upsert shipment snapshot")
}

// LoadShipment implements service.OrderStore.
func (s *Store) LoadShipment(ctx context.Context, shipmentID string) (service.Shipment, error) {
	var payload []byte
	err := s.DB.QueryRowContext(ctx, `
		SELECT payload FROM shipment_snapshots WHERE shipment_id = ?
	`, strings.TrimSpace(shipmentID)).Scan(&payload)
	if err == sql.ErrNoRows {
		return service.Shipment{}, errors.Errorf("shipment %s not found", shipmentID)
	}
	if err != nil {
		return service.Shipment{}, errors.Wrap(err, "load shipment snapshot")
	}

	var shipment service.Shipment
	if err := json.Unmarshal(payload, &shipment); err != nil {
		return service.Shipment{}, errors.Wrap(err, "decode shipment snapshot")
	}
	return shipment, nil
}
