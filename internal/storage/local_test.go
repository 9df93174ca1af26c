package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLocalStorage(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "LocalStorage Suite")
}

var _ = Describe("LocalStorage", func() {
	var (
		baseDir string
		store   *LocalStorage
		ctx     context.Context
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		baseDir, err = os.MkdirTemp("", "receipts-test-*")
		Expect(err).ToNot(HaveOccurred())

		store, err = NewLocalStorage(baseDir)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(baseDir)
	})

	Describe("Save", func() {
		It("should write the file and return a relative reference", func() {
			ref, err := store.Save(ctx, "bill.png", strings.NewReader("image-bytes"))

			Expect(err).ToNot(HaveOccurred())
			Expect(ref).To(HavePrefix("receipts/"))
			Expect(ref).To(HaveSuffix(".png"))

			data, err := os.ReadFile(filepath.Join(baseDir, filepath.FromSlash(ref)))
			Expect(err).ToNot(HaveOccurred())
			Expect(string(data)).To(Equal("image-bytes"))
		})

		It("should give two saves of the same name distinct references", func() {
			first, err := store.Save(ctx, "bill.pdf", strings.NewReader("a"))
			Expect(err).ToNot(HaveOccurred())
			second, err := store.Save(ctx, "bill.pdf", strings.NewReader("b"))
			Expect(err).ToNot(HaveOccurred())

			Expect(first).ToNot(Equal(second))
		})
	})

	Describe("Remove", func() {
		It("should delete a stored file", func() {
			ref, err := store.Save(ctx, "bill.png", strings.NewReader("image-bytes"))
			Expect(err).ToNot(HaveOccurred())

			Expect(store.Remove(ctx, ref)).To(Succeed())

			_, err = os.Stat(filepath.Join(baseDir, filepath.FromSlash(ref)))
			Expect(os.IsNotExist(err)).To(BeTrue())
		})

		It("should refuse references that escape the base directory", func() {
			Expect(store.Remove(ctx, "../../etc/passwd")).ToNot(Succeed())
			Expect(store.Remove(ctx, "/etc/passwd")).ToNot(Succeed())
		})
	})
})
