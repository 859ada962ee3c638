package postgres_test

import (
	"context"
	"testing"

	"github.com/frahmantamala/office-management/internal/core/datamodel/file"
	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
	"github.com/frahmantamala/office-management/internal/database"
	"github.com/frahmantamala/office-management/internal/user"
	userPostgres "github.com/frahmantamala/office-management/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

var _ = Describe("User PostgreSQL Repository", func() {
	var (
		ctx  context.Context
		db   *gorm.DB
		repo user.RepositoryAPI
	)

	newUser := func(email string) *userDatamodel.User {
		return &userDatamodel.User{
			FullName:         "Jane Doe",
			OrganizationName: "Acme",
			Email:            email,
			PhoneNo:          "+15550100",
			PasswordHash:     "hash",
		}
	}

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		cfg := database.GormConfig()
		cfg.Logger = logger.Default.LogMode(logger.Silent)
		db, err = gorm.Open(sqlite.Open(":memory:"), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&userDatamodel.User{}, &file.File{})).To(Succeed())

		repo = userPostgres.NewUserRepository(db)
	})

	It("creates and finds a user by id and email", func() {
		u := newUser("jane@acme.test")
		Expect(repo.Create(ctx, u)).To(Succeed())
		Expect(u.ID).NotTo(BeZero())

		byID, err := repo.GetByID(ctx, u.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(byID.Email).To(Equal("jane@acme.test"))

		byEmail, err := repo.GetByEmail(ctx, "jane@acme.test")
		Expect(err).NotTo(HaveOccurred())
		Expect(byEmail.ID).To(Equal(u.ID))

		_, err = repo.GetByEmail(ctx, "nobody@acme.test")
		Expect(err).To(Equal(user.ErrNotFound))
	})

	It("finds a user by email regardless of case", func() {
		u := newUser("mixed@acme.test")
		Expect(repo.Create(ctx, u)).To(Succeed())

		found, err := repo.GetByEmail(ctx, "Mixed@ACME.test")
		Expect(err).NotTo(HaveOccurred())
		Expect(found.ID).To(Equal(u.ID))
	})

	It("translates a duplicate email", func() {
		Expect(repo.Create(ctx, newUser("jane@acme.test"))).To(Succeed())
		Expect(repo.Create(ctx, newUser("jane@acme.test"))).To(Equal(user.ErrDuplicateEmail))
	})

	It("lists users in id order and deletes them", func() {
		first := newUser("a@acme.test")
		second := newUser("b@acme.test")
		Expect(repo.Create(ctx, first)).To(Succeed())
		Expect(repo.Create(ctx, second)).To(Succeed())

		users, err := repo.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(users).To(HaveLen(2))
		Expect(users[0].Email).To(Equal("a@acme.test"))

		Expect(repo.Delete(ctx, first.ID)).To(Succeed())
		Expect(repo.Delete(ctx, first.ID)).To(Equal(user.ErrNotFound))
	})

	It("lists the blob paths of a user's files", func() {
		u := newUser("jane@acme.test")
		Expect(repo.Create(ctx, u)).To(Succeed())
		for _, p := range []string{"/uploads/1-a.txt", "/uploads/2-b.txt"} {
			Expect(db.Create(&file.File{
				UserID: u.ID, FileName: p, OriginalFileName: p, FileType: "text/plain",
				FileSize: 1, FileCategory: "Note", FilePath: p,
			}).Error).To(Succeed())
		}

		paths, err := repo.ListFilePaths(ctx, u.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(paths).To(ConsistOf("/uploads/1-a.txt", "/uploads/2-b.txt"))
	})
})
