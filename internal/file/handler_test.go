package file_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strconv"
	"strings"

	"github.com/frahmantamala/office-management/internal"
	fileDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/file"
	"github.com/frahmantamala/office-management/internal/core/events"
	"github.com/frahmantamala/office-management/internal/file"
	filePostgres "github.com/frahmantamala/office-management/internal/file/postgres"
	"github.com/frahmantamala/office-management/internal/storage"
	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("File Handler Integration", func() {
	var (
		router   *chi.Mux
		callerID int64
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&fileDatamodel.File{})).To(Succeed())

		store, err := storage.New(afero.NewMemMapFs(), "/uploads")
		Expect(err).NotTo(HaveOccurred())

		service := file.NewService(filePostgres.NewFileRepository(db), store, events.Nop{}, 1024, slogger)
		handler := file.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		callerID = 1
		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithUserID(r.Context(), callerID)))
			})
		})
		router.Post("/files/upload", handler.UploadFile)
		router.Get("/files/download/{id}", handler.DownloadFile)
		router.Get("/files/{id}/stats", handler.GetFileStats)
		router.Get("/files/{id}", handler.GetFiles)
		router.Put("/files/{id}", handler.UpdateFile)
		router.Delete("/files/{id}", handler.DeleteFile)
	})

	decode := func(w *httptest.ResponseRecorder) map[string]interface{} {
		var decoded map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&decoded)).To(Succeed())
		return decoded
	}

	uploadReq := func(fields map[string]string, name, contentType string, content []byte) *http.Request {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for k, v := range fields {
			Expect(mw.WriteField(k, v)).To(Succeed())
		}
		if name != "" {
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
			header.Set("Content-Type", contentType)
			part, err := mw.CreatePart(header)
			Expect(err).NotTo(HaveOccurred())
			_, err = part.Write(content)
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(mw.Close()).To(Succeed())

		req := httptest.NewRequest(http.MethodPost, "/files/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return req
	}

	do := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("uploads, lists, downloads, updates and deletes a file", func() {
		w := do(uploadReq(map[string]string{"userId": "1", "fileCategory": "Note", "tags": "weekly"},
			"plan.txt", "text/plain", []byte("ship it")))
		Expect(w.Code).To(Equal(http.StatusCreated))
		body := decode(w)
		Expect(body["message"]).To(Equal("File uploaded successfully"))
		id := strconv.FormatInt(int64(body["fileId"].(float64)), 10)

		w = do(httptest.NewRequest(http.MethodGet, "/files/1?search=WEEK&category=All", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		files := decode(w)["files"].([]interface{})
		Expect(files).To(HaveLen(1))
		listed := files[0].(map[string]interface{})
		Expect(listed["originalFileName"]).To(Equal("plan.txt"))
		Expect(listed).NotTo(HaveKey("filePath"))

		w = do(httptest.NewRequest(http.MethodGet, "/files/download/"+id, nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(Equal("text/plain"))
		Expect(w.Header().Get("Content-Disposition")).To(Equal(`attachment; filename=plan.txt`))
		data, err := io.ReadAll(w.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("ship it"))

		req := httptest.NewRequest(http.MethodPut, "/files/"+id, strings.NewReader(`{"fileCategory":"Report","description":"final"}`))
		w = do(req)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["message"]).To(Equal("File updated successfully"))

		w = do(httptest.NewRequest(http.MethodGet, "/files/1/stats", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		stats := decode(w)["stats"].(map[string]interface{})
		Expect(stats["totalFiles"]).To(BeEquivalentTo(1))
		Expect(stats["totalSize"]).To(BeEquivalentTo(7))

		w = do(httptest.NewRequest(http.MethodDelete, "/files/"+id, nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["message"]).To(Equal("File deleted successfully"))

		w = do(httptest.NewRequest(http.MethodGet, "/files/download/"+id, nil))
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("treats an empty update body as no fields and resets the category", func() {
		w := do(uploadReq(map[string]string{"userId": "1", "fileCategory": "Report", "description": "q3"},
			"q3.txt", "text/plain", []byte("numbers")))
		Expect(w.Code).To(Equal(http.StatusCreated))
		id := strconv.FormatInt(int64(decode(w)["fileId"].(float64)), 10)

		w = do(httptest.NewRequest(http.MethodPut, "/files/"+id, http.NoBody))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["message"]).To(Equal("File updated successfully"))

		w = do(httptest.NewRequest(http.MethodGet, "/files/1", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		listed := decode(w)["files"].([]interface{})[0].(map[string]interface{})
		Expect(listed["fileCategory"]).To(Equal("Document"))
		Expect(listed["description"]).To(BeNil())

		w = do(httptest.NewRequest(http.MethodPut, "/files/"+id, strings.NewReader(`{"fileCategory":`)))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w)["code"]).To(Equal("INVALID_REQUEST"))
	})

	It("rejects a disallowed media type", func() {
		w := do(uploadReq(map[string]string{"userId": "1"}, "run.sh", "application/x-sh", []byte("#!/bin/sh")))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		body := decode(w)
		Expect(body["code"]).To(Equal("FILE_TYPE_NOT_ALLOWED"))
		Expect(body["message"]).To(Equal("File type application/x-sh not allowed"))
	})

	It("rejects a file over the upload limit", func() {
		w := do(uploadReq(map[string]string{"userId": "1"}, "big.txt", "text/plain", bytes.Repeat([]byte("x"), 2048)))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w)["code"]).To(Equal("FILE_TOO_LARGE"))
	})

	It("requires the file part", func() {
		w := do(uploadReq(map[string]string{"userId": "1"}, "", "", nil))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w)["message"]).To(Equal("userId and file are required"))
	})

	It("refuses an upload on behalf of another user", func() {
		w := do(uploadReq(map[string]string{"userId": "2"}, "a.txt", "text/plain", []byte("a")))
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("answers 400 for a body that is not multipart", func() {
		req := httptest.NewRequest(http.MethodPost, "/files/upload", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := do(req)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decode(w)["code"]).To(Equal("INVALID_REQUEST"))
	})
})
