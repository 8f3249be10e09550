package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/skillchain/skillchain-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCertificateRepositoryTest(t *testing.T) (*GormCertificateRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:certificate_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Certificate{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCertificateRepository(db), db
}

func createRepoCertificate(t *testing.T, repo *GormCertificateRepository, certificateID, apparID, issuerName string) *models.Certificate {
	t.Helper()
	certificate := &models.Certificate{
		CertificateID:  certificateID,
		StudentName:    "Repo Student",
		StudentApparID: apparID,
		CourseName:     "Repo Course",
		IssuerName:     issuerName,
		IssueDate:      "2024-01-01",
		IsValid:        true,
	}
	if err := repo.Create(certificate); err != nil {
		t.Fatalf("create certificate failed: %v", err)
	}
	return certificate
}

func TestCertificateRepositoryGetByCertificateID(t *testing.T) {
	repo, _ := setupCertificateRepositoryTest(t)
	created := createRepoCertificate(t, repo, "crt-get-1", "APPAR-1", "Issuer A")

	found, err := repo.GetByCertificateID("crt-get-1")
	if err != nil {
		t.Fatalf("get by certificate id failed: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("expected certificate %d, got: %+v", created.ID, found)
	}

	missing, err := repo.GetByCertificateID("crt-missing")
	if err != nil {
		t.Fatalf("get missing failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing certificate, got: %+v", missing)
	}
}

func TestCertificateRepositoryListFilters(t *testing.T) {
	repo, _ := setupCertificateRepositoryTest(t)
	createRepoCertificate(t, repo, "crt-f1", "APPAR-1", "Issuer A")
	createRepoCertificate(t, repo, "crt-f2", "APPAR-2", "Issuer B")
	createRepoCertificate(t, repo, "crt-f3", "APPAR-1", "Issuer B")

	certs, total, err := repo.List(CertificateListFilter{StudentApparID: "APPAR-1"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(certs) != 2 {
		t.Fatalf("expected 2 certificates for APPAR-1, got total=%d len=%d", total, len(certs))
	}

	certs, total, err = repo.List(CertificateListFilter{IssuerName: "Issuer B"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 certificates for Issuer B, got: %d", total)
	}
	_ = certs
}

func TestCertificateRepositoryUpdateIssuerName(t *testing.T) {
	repo, _ := setupCertificateRepositoryTest(t)
	createRepoCertificate(t, repo, "crt-u1", "APPAR-1", "Old Name")

	rows, err := repo.UpdateIssuerName("crt-u1", "New Name")
	if err != nil {
		t.Fatalf("update issuer failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row updated, got: %d", rows)
	}

	rows, err = repo.UpdateIssuerName("crt-none", "Whatever")
	if err != nil {
		t.Fatalf("update missing failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows for missing certificate, got: %d", rows)
	}
}

func TestCertificateRepositoryCount(t *testing.T) {
	repo, _ := setupCertificateRepositoryTest(t)
	createRepoCertificate(t, repo, "crt-c1", "APPAR-1", "Issuer A")
	createRepoCertificate(t, repo, "crt-c2", "APPAR-2", "Issuer A")

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 certificates, got: %d", count)
	}
}
