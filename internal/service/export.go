package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"orderapi/internal/model"
	"orderapi/internal/repository"
	"orderapi/internal/storage"
)

const exportURLTTL = 15 * time.Minute

// ExportService snapshots all orders into a CSV object and hands back a
// presigned download link.
type ExportService interface {
	ExportOrders(ctx context.Context) (*model.OrderExport, error)
}

type exportService struct {
	store  storage.Storage
	orders repository.OrderRepository
}

// NewExportService constructs a new ExportService.
func NewExportService(store storage.Storage, orders repository.OrderRepository) ExportService {
	return &exportService{store: store, orders: orders}
}

// ExportOrders writes one CSV line per order (joined with the customer's
// email), uploads it under a timestamped key and presigns a GET URL.
// An empty order table still produces a valid header-only file.
func (s *exportService) ExportOrders(ctx context.Context) (*model.OrderExport, error) {
	rows, err := s.orders.ListForExport(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders for export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"order_id", "product", "quantity", "customer_id", "customer_email", "created_at"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.OrderID,
			row.Product,
			strconv.Itoa(row.Quantity),
			row.CustomerID,
			row.CustomerEmail,
			row.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	key := fmt.Sprintf("exports/orders-%s.csv", time.Now().UTC().Format("20060102-150405"))
	if _, err := s.store.Put(ctx, key, bytes.NewReader(buf.Bytes()), storage.PutObjectOptions{
		Size:        int64(buf.Len()),
		ContentType: "text/csv",
	}); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, exportURLTTL)
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}

	return &model.OrderExport{
		Key:       key,
		URL:       url,
		Rows:      len(rows),
		ExpiresAt: time.Now().UTC().Add(exportURLTTL),
	}, nil
}
