package credcmder_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/spf13/cobra"

	credcmder "github.com/alexvdvalk/directus-auth-manager/cmd/directus-auth/cred"
	"github.com/alexvdvalk/directus-auth-manager/pkg/credentials"
)

// run executes cmd against dir and returns its stdout.
func run(cmd *cobra.Command, dir string, stdin string, args ...string) (string, error) {
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.PersistentFlags().String("config-dir", "", "Override the config directory")
	cmd.PersistentFlags().Bool("no-color", true, "Disable colour")
	cmd.SetArgs(append(args, "--config-dir", dir))

	err := cmd.Execute()
	return out.String(), err
}

var _ = Describe("Credential Commands", func() {
	var (
		tmpDir string
		store  *credentials.Store
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		store = credentials.NewStoreInDir(tmpDir)
	})

	Describe("add", func() {
		It("has the expected flags", func() {
			cmd := credcmder.NewAddCmd()
			Expect(cmd.Use).To(Equal("add <name>"))
			for _, name := range []string{"url", "token", "force", "validate"} {
				Expect(cmd.Flags().Lookup(name)).NotTo(BeNil(), name)
			}
		})

		It("stores credentials and makes the first set active", func() {
			out, err := run(credcmder.NewAddCmd(), tmpDir, "",
				"production", "--url", "https://cms.example.com", "--token", "prod-token")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring(`Stored credentials "production"`))
			Expect(out).To(ContainSubstring("active credential set"))

			creds, ok := store.Get("production")
			Expect(ok).To(BeTrue())
			Expect(creds).To(Equal(credentials.Credentials{URL: "https://cms.example.com", Token: "prod-token"}))
		})

		It("reads the token from piped stdin", func() {
			_, err := run(credcmder.NewAddCmd(), tmpDir, "piped-token\n",
				"staging", "--url", "https://staging.example.com")
			Expect(err).NotTo(HaveOccurred())

			creds, _ := store.Get("staging")
			Expect(creds.Token).To(Equal("piped-token"))
		})

		It("rejects invalid names and URLs", func() {
			_, err := run(credcmder.NewAddCmd(), tmpDir, "", "my prod", "--url", "https://cms.example.com", "--token", "t")
			Expect(err).To(MatchError(ContainSubstring("invalid name")))

			_, err = run(credcmder.NewAddCmd(), tmpDir, "", "prod", "--url", "cms.example.com", "--token", "t")
			Expect(err).To(MatchError(ContainSubstring("invalid URL")))

			Expect(store.Names()).To(BeEmpty())
		})

		It("rejects an empty token", func() {
			_, err := run(credcmder.NewAddCmd(), tmpDir, "   \n", "prod", "--url", "https://cms.example.com")
			Expect(err).To(MatchError(ContainSubstring("token cannot be empty")))
		})

		It("refuses to overwrite without --force", func() {
			Expect(store.Add("production", credentials.Credentials{URL: "https://old.example.com", Token: "old"})).To(Succeed())

			_, err := run(credcmder.NewAddCmd(), tmpDir, "",
				"production", "--url", "https://new.example.com", "--token", "new")
			Expect(err).To(MatchError(ContainSubstring("--force")))

			_, err = run(credcmder.NewAddCmd(), tmpDir, "",
				"production", "--url", "https://new.example.com", "--token", "new", "--force")
			Expect(err).NotTo(HaveOccurred())

			creds, _ := store.Get("production")
			Expect(creds.Token).To(Equal("new"))
		})

		It("does not store credentials that fail validation", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			DeferCleanup(server.Close)

			out, err := run(credcmder.NewAddCmd(), tmpDir, "",
				"production", "--url", server.URL, "--token", "bad", "--validate")
			Expect(err).To(MatchError(ContainSubstring("validation failed")))
			Expect(out).To(ContainSubstring("Unauthorized - Invalid or expired token"))
			Expect(store.Has("production")).To(BeFalse())
		})

		It("stores credentials that pass validation", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"data":{"id":"1","email":"a@b.com"}}`))
			}))
			DeferCleanup(server.Close)

			out, err := run(credcmder.NewAddCmd(), tmpDir, "",
				"production", "--url", server.URL, "--token", "good", "--validate")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("production: Valid (a@b.com)"))
			Expect(store.Has("production")).To(BeTrue())
		})
	})

	Describe("list", func() {
		It("explains when nothing is stored", func() {
			out, err := run(credcmder.NewListCmd(), tmpDir, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("No stored credentials."))
		})

		It("marks the active set and masks tokens", func() {
			Expect(store.Add("production", credentials.Credentials{URL: "https://cms.example.com", Token: "abcdefghijklmnop"})).To(Succeed())
			Expect(store.Add("local", credentials.Credentials{URL: "http://localhost:8055", Token: "short"})).To(Succeed())

			out, err := run(credcmder.NewListCmd(), tmpDir, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("  local       http://localhost:8055  *****"))
			Expect(out).To(ContainSubstring("* production  https://cms.example.com  abcd...mnop"))
			Expect(out).NotTo(ContainSubstring("abcdefghijklmnop"))
		})
	})

	Describe("use", func() {
		It("switches the active set", func() {
			Expect(store.Add("production", credentials.Credentials{URL: "https://cms.example.com", Token: "p"})).To(Succeed())
			Expect(store.Add("staging", credentials.Credentials{URL: "https://staging.example.com", Token: "s"})).To(Succeed())

			out, err := run(credcmder.NewUseCmd(), tmpDir, "", "staging")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("Active credentials: staging"))

			name, _ := store.ActiveName()
			Expect(name).To(Equal("staging"))
		})

		It("fails on an unknown name without writing", func() {
			_, err := run(credcmder.NewUseCmd(), tmpDir, "", "missing")
			Expect(err).To(MatchError(`credentials "missing" not found`))
			Expect(store.Path()).NotTo(BeAnExistingFile())
		})
	})

	Describe("current", func() {
		It("reports no active set", func() {
			out, err := run(credcmder.NewCurrentCmd(), tmpDir, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("No active credentials."))
		})

		It("shows the active set", func() {
			Expect(store.Add("production", credentials.Credentials{URL: "https://cms.example.com", Token: "abcdefghijklmnop"})).To(Succeed())

			out, err := run(credcmder.NewCurrentCmd(), tmpDir, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("Name:  production"))
			Expect(out).To(ContainSubstring("URL:   https://cms.example.com"))
			Expect(out).To(ContainSubstring("Token: abcd...mnop"))
		})

		It("follows changes with --watch", func() {
			Expect(store.Add("production", credentials.Credentials{URL: "https://cms.example.com", Token: "p"})).To(Succeed())
			Expect(store.Add("staging", credentials.Credentials{URL: "https://staging.example.com", Token: "s"})).To(Succeed())

			ctx, cancel := context.WithCancel(context.Background())
			DeferCleanup(cancel)

			buf := gbytes.NewBuffer()
			cmd := credcmder.NewCurrentCmd()
			cmd.SetOut(buf)
			cmd.SetErr(&bytes.Buffer{})
			cmd.PersistentFlags().String("config-dir", "", "")
			cmd.SetArgs([]string{"--watch", "--config-dir", tmpDir})

			done := make(chan error, 1)
			go func() { done <- cmd.ExecuteContext(ctx) }()

			Eventually(buf).Should(gbytes.Say("Name:  production"))
			_, err := store.SetActive("staging")
			Expect(err).NotTo(HaveOccurred())
			Eventually(buf, 2*time.Second).Should(gbytes.Say("Name:  staging"))

			cancel()
			Eventually(done).Should(Receive(BeNil()))
		})
	})

	Describe("remove", func() {
		It("removes a set and re-points the active set", func() {
			Expect(store.Add("production", credentials.Credentials{URL: "https://cms.example.com", Token: "p"})).To(Succeed())
			Expect(store.Add("staging", credentials.Credentials{URL: "https://staging.example.com", Token: "s"})).To(Succeed())

			out, err := run(credcmder.NewRemoveCmd(), tmpDir, "", "production")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring(`Removed credentials "production"`))
			Expect(out).To(ContainSubstring("Active credentials: staging"))
		})

		It("reports when nothing remains", func() {
			Expect(store.Add("production", credentials.Credentials{URL: "https://cms.example.com", Token: "p"})).To(Succeed())

			out, err := run(credcmder.NewRemoveCmd(), tmpDir, "", "production")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("nothing is active"))
			_, ok := store.ActiveName()
			Expect(ok).To(BeFalse())
		})

		It("fails on an unknown name", func() {
			_, err := run(credcmder.NewRemoveCmd(), tmpDir, "", "missing")
			Expect(err).To(MatchError(ContainSubstring("not found")))
		})
	})

	Describe("completion", func() {
		It("completes stored names", func() {
			Expect(store.Add("production", credentials.Credentials{URL: "https://cms.example.com", Token: "p"})).To(Succeed())
			GinkgoT().Setenv("DIRECTUS_AUTH_DIR", tmpDir)

			cmd := credcmder.NewUseCmd()
			completions, directive := cmd.ValidArgsFunction(cmd, []string{}, "")
			Expect(completions).To(ConsistOf("production"))
			Expect(directive).To(Equal(cobra.ShellCompDirectiveNoFileComp))
		})
	})
})
