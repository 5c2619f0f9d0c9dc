package credentials_test

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alexvdvalk/directus-auth-manager/pkg/credentials"
)

type activeRecorder struct {
	mu   sync.Mutex
	seen []*credentials.Active
}

func (r *activeRecorder) record(a *credentials.Active) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, a)
}

func (r *activeRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.seen))
	for _, a := range r.seen {
		if a == nil {
			names = append(names, "")
			continue
		}
		names = append(names, a.Name)
	}
	return names
}

var _ = Describe("Store.Watch", func() {
	It("reports the initial state and each change of the active set", func() {
		store := credentials.NewStoreInDir(GinkgoT().TempDir())
		rec := &activeRecorder{}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- store.Watch(ctx, rec.record)
		}()
		DeferCleanup(func() {
			cancel()
			Eventually(done, 2*time.Second).Should(Receive(BeNil()))
		})

		Eventually(rec.names, 2*time.Second, 20*time.Millisecond).Should(Equal([]string{""}))

		Expect(store.Add("production", prod)).To(Succeed())
		Eventually(rec.names, 2*time.Second, 20*time.Millisecond).Should(Equal([]string{"", "production"}))

		// Adding a second set leaves active untouched, so no callback.
		Expect(store.Add("staging", staging)).To(Succeed())
		Consistently(rec.names, 200*time.Millisecond, 20*time.Millisecond).Should(HaveLen(2))

		_, err := store.SetActive("staging")
		Expect(err).NotTo(HaveOccurred())
		Eventually(rec.names, 2*time.Second, 20*time.Millisecond).Should(Equal([]string{"", "production", "staging"}))
	})

	It("returns when the context is cancelled", func() {
		store := credentials.NewStoreInDir(GinkgoT().TempDir())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Expect(store.Watch(ctx, func(*credentials.Active) {})).To(Succeed())
	})
})
