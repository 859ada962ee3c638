package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frahmantamala/office-management/api"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAPI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "API Document Suite")
}

var _ = Describe("OpenAPI document", func() {
	It("loads and validates", func() {
		doc, err := api.Load(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Info.Title).To(Equal("Office Management API"))
	})

	It("describes every route group", func() {
		doc, err := api.Load(context.Background())
		Expect(err).NotTo(HaveOccurred())

		for _, path := range []string{
			"/api/auth/signup",
			"/api/auth/signin",
			"/api/employees/{id}",
			"/api/tasks/detail/{id}",
			"/api/files/upload",
			"/api/files/download/{id}",
			"/api/health",
		} {
			Expect(doc.Paths.Value(path)).NotTo(BeNil(), path)
		}
	})

	It("is served as yaml", func() {
		w := httptest.NewRecorder()
		api.Handler()(w, httptest.NewRequest(http.MethodGet, "/openapi.yml", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(Equal("application/yaml"))
		Expect(strings.HasPrefix(w.Body.String(), "openapi: 3.0.3")).To(BeTrue())
	})
})
