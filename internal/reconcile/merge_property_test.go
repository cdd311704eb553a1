package reconcile

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/yukikurage/retro-board-api/internal/events"
)

func genCards() gopter.Gen {
	return gen.SliceOfN(8, gen.IntRange(0, 3)).Map(func(votes []int) []events.CardView {
		cards := make([]events.CardView, len(votes))
		for i, n := range votes {
			users := make([]string, n)
			for j := range users {
				users[j] = fmt.Sprintf("u%d", j)
			}
			cards[i] = card(fmt.Sprintf("c%d", i), "s1", i, users...)
		}
		return cards
	})
}

func TestProperty_CreatedIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("applying card:created twice equals applying it once", prop.ForAll(
		func(cards []events.CardView, minute int) bool {
			incoming := card(fmt.Sprintf("c%d", minute%10), "s1", minute)
			once := applyCreated(cards, incoming)
			twice := applyCreated(once, incoming)
			return reflect.DeepEqual(once, twice)
		},
		genCards(),
		gen.IntRange(0, 59),
	))

	properties.TestingRun(t)
}

func TestProperty_ReactionRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("reaction-added then reaction-removed restores the card's reactions", prop.ForAll(
		func(cards []events.CardView, pick int, reactionType string) bool {
			if len(cards) == 0 {
				return true
			}
			target := cards[pick%len(cards)].ID
			reaction := events.ReactionView{ID: "fresh", UserID: "visitor", Type: reactionType}

			added := applyReactionAdded(cards, target, reaction)
			restored := applyReactionRemoved(added, target, events.RemovedReaction{UserID: "visitor", Type: reactionType})
			return reflect.DeepEqual(cards, restored)
		},
		genCards(),
		gen.IntRange(0, 100),
		gen.OneConstOf(UpvoteType, "HEART", "LAUGH"),
	))

	properties.TestingRun(t)
}

func TestProperty_DeleteIsIdempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("card:deleted is safe to replay", prop.ForAll(
		func(cards []events.CardView, pick int) bool {
			id := fmt.Sprintf("c%d", pick)
			once := applyDeleted(cards, id)
			return reflect.DeepEqual(once, applyDeleted(once, id)) && indexOf(once, id) < 0
		},
		genCards(),
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}

func TestProperty_DisplayOrderIsSorted(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("display order never puts fewer upvotes first", prop.ForAll(
		func(cards []events.CardView) bool {
			column := Columns([]Stage{{ID: "s1"}}, cards)[0].Cards
			for i := 1; i < len(column); i++ {
				prev, cur := column[i-1], column[i]
				if Upvotes(prev) < Upvotes(cur) {
					return false
				}
				if Upvotes(prev) == Upvotes(cur) && createdAt(prev).Before(createdAt(cur)) {
					return false
				}
			}
			return len(column) == len(cards)
		},
		genCards(),
	))

	properties.TestingRun(t)
}
