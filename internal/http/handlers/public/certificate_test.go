package public

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCreateCertificateHandlerIssues(t *testing.T) {
	h, _ := setupAuthHandlerTest(t)
	w, envelope := doJSONRequest(t, h.CreateCertificate, http.MethodPost, "/api/certificates",
		`{"certificateId":"crt-h1","studentName":"Rakesh Gajre","studentApparId":"APPAR-2023-992","courseName":"Advanced Full-Stack Development","grade":"A+","issuerName":"Tech Institute of India","issueDate":"2023-10-15","ipfsCid":"QmXoypizjW3WknFiJnKLwHCnL72vedxjQkDDP1mXWo6uco","blockchainTx":"0x7129038...8923"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", w.Code, w.Body.String())
	}
	data, ok := envelope["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected certificate payload, got: %v", envelope)
	}
	if data["certificate_id"] != "crt-h1" {
		t.Fatalf("unexpected certificate id: %v", data["certificate_id"])
	}
	if data["is_valid"] != true {
		t.Fatalf("expected is_valid true, got: %v", data["is_valid"])
	}
}

func TestCreateCertificateHandlerDuplicateConflicts(t *testing.T) {
	h, _ := setupAuthHandlerTest(t)
	body := `{"certificateId":"crt-h2","studentName":"A","studentApparId":"APPAR-1","courseName":"C","issuerName":"I","issueDate":"2024-01-01"}`
	doJSONRequest(t, h.CreateCertificate, http.MethodPost, "/api/certificates", body)

	w, envelope := doJSONRequest(t, h.CreateCertificate, http.MethodPost, "/api/certificates", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if envelope["msg"] != "Certificate ID already exists" {
		t.Fatalf("unexpected message: %v", envelope["msg"])
	}
}

func TestGetCertificateHandlerNotFound(t *testing.T) {
	h, _ := setupAuthHandlerTest(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/certificates/crt-missing", nil)
	c.Params = gin.Params{{Key: "certificateId", Value: "crt-missing"}}

	h.GetCertificate(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetCertificateHandlerFound(t *testing.T) {
	h, _ := setupAuthHandlerTest(t)
	doJSONRequest(t, h.CreateCertificate, http.MethodPost, "/api/certificates",
		`{"certificateId":"crt-h3","studentName":"A","studentApparId":"APPAR-1","courseName":"C","issuerName":"I","issueDate":"2024-01-01"}`)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/certificates/crt-h3", nil)
	c.Params = gin.Params{{Key: "certificateId", Value: "crt-h3"}}

	h.GetCertificate(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", w.Code, w.Body.String())
	}
}

func TestUpdateCertificateHandler(t *testing.T) {
	h, _ := setupAuthHandlerTest(t)
	doJSONRequest(t, h.CreateCertificate, http.MethodPost, "/api/certificates",
		`{"certificateId":"crt-h4","studentName":"A","studentApparId":"APPAR-1","courseName":"C","issuerName":"Old","issueDate":"2024-01-01"}`)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPut, "/api/certificates/crt-h4", strings.NewReader(`{"issuerName":"New Institute"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "certificateId", Value: "crt-h4"}}

	h.UpdateCertificate(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", w.Code, w.Body.String())
	}
}

func TestListCertificatesHandlerFiltersByApparID(t *testing.T) {
	h, _ := setupAuthHandlerTest(t)
	doJSONRequest(t, h.CreateCertificate, http.MethodPost, "/api/certificates",
		`{"certificateId":"crt-h5","studentName":"A","studentApparId":"APPAR-X","courseName":"C","issuerName":"I","issueDate":"2024-01-01"}`)
	doJSONRequest(t, h.CreateCertificate, http.MethodPost, "/api/certificates",
		`{"certificateId":"crt-h6","studentName":"B","studentApparId":"APPAR-Y","courseName":"C","issuerName":"I","issueDate":"2024-01-01"}`)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/certificates?apparId=APPAR-X", nil)

	h.ListCertificates(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "crt-h5") || strings.Contains(body, "crt-h6") {
		t.Fatalf("expected only APPAR-X certificates, got: %s", body)
	}
}

func TestListStudentCertificatesHandlerByPathParam(t *testing.T) {
	h, _ := setupAuthHandlerTest(t)
	doJSONRequest(t, h.CreateCertificate, http.MethodPost, "/api/certificates",
		`{"certificateId":"crt-h7","studentName":"A","studentApparId":"APPAR-STU","courseName":"C","issuerName":"I","issueDate":"2024-01-01"}`)
	doJSONRequest(t, h.CreateCertificate, http.MethodPost, "/api/certificates",
		`{"certificateId":"crt-h8","studentName":"B","studentApparId":"APPAR-OTHER","courseName":"C","issuerName":"I","issueDate":"2024-01-01"}`)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/certificates/student/APPAR-STU", nil)
	c.Params = gin.Params{{Key: "apparId", Value: "APPAR-STU"}}

	h.ListStudentCertificates(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "crt-h7") || strings.Contains(body, "crt-h8") {
		t.Fatalf("expected only APPAR-STU certificates, got: %s", body)
	}
}
