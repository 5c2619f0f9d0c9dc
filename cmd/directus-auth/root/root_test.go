package rootcmder_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	menucmder "github.com/alexvdvalk/directus-auth-manager/cmd/directus-auth/menu"
	rootcmder "github.com/alexvdvalk/directus-auth-manager/cmd/directus-auth/root"
	"github.com/alexvdvalk/directus-auth-manager/pkg/authmanager"
	"github.com/alexvdvalk/directus-auth-manager/pkg/credentials"
	"github.com/alexvdvalk/directus-auth-manager/pkg/tui"
	"github.com/alexvdvalk/directus-auth-manager/pkg/tui/tuitest"
)

var _ = Describe("Root Command", func() {
	var (
		tmpDir string
		store  *credentials.Store
	)

	run := func(args ...string) (string, error) {
		cmd := rootcmder.NewRootCmd()
		out := &bytes.Buffer{}
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetIn(&bytes.Buffer{})
		cmd.SetArgs(append(args, "--config-dir", tmpDir))
		err := cmd.Execute()
		return out.String(), err
	}

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		store = credentials.NewStoreInDir(tmpDir)
	})

	It("registers the persistent flags and subcommands", func() {
		cmd := rootcmder.NewRootCmd()
		Expect(cmd.PersistentFlags().Lookup("config-dir")).NotTo(BeNil())
		Expect(cmd.PersistentFlags().Lookup("debug")).NotTo(BeNil())
		Expect(cmd.PersistentFlags().Lookup("no-color")).NotTo(BeNil())
		Expect(cmd.Flags().ShorthandLookup("j")).NotTo(BeNil())

		names := []string{}
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		Expect(names).To(ContainElements("add", "list", "use", "current", "remove", "validate", "menu", "mcp"))
	})

	Describe("--json", func() {
		It("prints the active set on one line", func() {
			Expect(store.Add("production", credentials.Credentials{URL: "https://cms.example.com", Token: "tok"})).To(Succeed())

			out, err := run("--json")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(`{"name":"production","url":"https://cms.example.com","token":"tok"}` + "\n"))
		})

		It("accepts -j", func() {
			Expect(store.Add("production", credentials.Credentials{URL: "https://cms.example.com", Token: "tok"})).To(Succeed())

			out, err := run("-j")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring(`"name":"production"`))
		})

		It("still prints the active set when settings.toml is corrupt", func() {
			Expect(store.Add("production", credentials.Credentials{URL: "https://cms.example.com", Token: "tok"})).To(Succeed())
			Expect(os.WriteFile(filepath.Join(tmpDir, "settings.toml"), []byte("[validation\n"), 0o600)).To(Succeed())
			GinkgoT().Setenv("DIRECTUS_AUTH_LOG_LEVEL", "verbose")

			out, err := run("--json")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(`{"name":"production","url":"https://cms.example.com","token":"tok"}` + "\n"))
		})

		It("fails when nothing is active", func() {
			out, err := run("--json")
			Expect(err).To(MatchError(authmanager.ErrNoActive))
			Expect(err.Error()).To(Equal("no active credentials"))
			Expect(out).To(BeEmpty())
		})
	})

	It("prints help when stdin is not a terminal", func() {
		DeferCleanup(rootcmder.SetInteractive(false))

		out, err := run()
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("Manage credentials for Directus instances."))
		Expect(out).To(ContainSubstring("Available Commands:"))
	})

	It("opens the menu in a terminal", func() {
		DeferCleanup(rootcmder.SetInteractive(true))

		prompter := tuitest.NewPrompter(tuitest.Choose(menucmder.ActionExit))
		original := menucmder.NewPrompter
		DeferCleanup(func() { menucmder.NewPrompter = original })
		menucmder.NewPrompter = func(*cobra.Command, *tui.Styles) tui.Prompter { return prompter }

		_, err := run()
		Expect(err).NotTo(HaveOccurred())
		Expect(prompter.Prompts).To(Equal([]string{"Directus Auth Manager"}))
	})

	It("passes persistent flags to subcommands", func() {
		_, err := run("add", "production", "--url", "https://cms.example.com", "--token", "tok")
		Expect(err).NotTo(HaveOccurred())

		out, err := run("list")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("* production"))
	})

	It("rejects positional arguments", func() {
		_, err := run("production")
		Expect(err).To(HaveOccurred())
	})
})
