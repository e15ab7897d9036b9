package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/okian/porra/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new InMemoryDeduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("When a key is new", func() {
			seen := d.SeenAndRecord(ctx, "Alemania-Escocia")

			Convey("Then it is recorded", func() {
				So(seen, ShouldBeFalse)
				So(d.SeenAndRecord(ctx, "Alemania-Escocia"), ShouldBeTrue)
			})
		})

		Convey("When a key repeats", func() {
			d.SeenAndRecord(ctx, "2024-06-29 18:00")
			seen := d.SeenAndRecord(ctx, "2024-06-29 18:00")

			Convey("Then it reports the duplicate", func() {
				So(seen, ShouldBeTrue)
			})
		})

		Convey("When many keys are recorded", func() {
			for i := 0; i < 1000; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("k-%d", i))
			}

			Convey("Then the first is still remembered", func() {
				So(d.SeenAndRecord(ctx, "k-0"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "k-1000"), ShouldBeFalse)
			})
		})
	})

	Convey("Given concurrent callers", t, func() {
		d := dedupe.NewInMemoryDeduper()
		var wg sync.WaitGroup
		var mu sync.Mutex
		fresh := 0

		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					if !d.SeenAndRecord(ctx, fmt.Sprintf("k-%d", i)) {
						mu.Lock()
						fresh++
						mu.Unlock()
					}
				}
			}()
		}
		wg.Wait()

		So(fresh, ShouldEqual, 100)
	})
}
