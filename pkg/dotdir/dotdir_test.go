package dotdir

import (
	"errors"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Manager.Target", func() {
	var mgr *Manager

	BeforeEach(func() {
		mgr = &Manager{homeDir: func() (string, error) { return "/home/tester", nil }}
		GinkgoT().Setenv(EnvDir, "")
	})

	It("prefers the explicit override", func() {
		GinkgoT().Setenv(EnvDir, "/from/env")

		dir, err := mgr.Target("/explicit/")
		Expect(err).NotTo(HaveOccurred())
		Expect(dir).To(Equal("/explicit"))
	})

	It("falls back to the environment variable", func() {
		GinkgoT().Setenv(EnvDir, "/from/env")

		dir, err := mgr.Target("")
		Expect(err).NotTo(HaveOccurred())
		Expect(dir).To(Equal("/from/env"))
	})

	It("defaults to a dot directory in home", func() {
		dir, err := mgr.Target("  ")
		Expect(err).NotTo(HaveOccurred())
		Expect(dir).To(Equal(filepath.Join("/home/tester", DirName)))
	})

	It("surfaces home directory errors", func() {
		mgr.homeDir = func() (string, error) { return "", errors.New("no home") }

		_, err := mgr.Target("")
		Expect(err).To(MatchError(ContainSubstring("resolving home dir")))
	})
})
