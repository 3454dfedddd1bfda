package intent

import (
	"regexp"
	"strings"

	"github.com/zhouzirui/farmstead/backend/internal/model/knowledge"
)

// Rule names in evaluation order.
const (
	RuleGreeting         = "greeting"
	RuleSmallTalk        = "small-talk"
	RuleProduct          = "product"
	RuleOrder            = "order"
	RuleSupport          = "support"
	RuleGeneralInfo      = "general-info"
	RuleOrderingOverview = "ordering-overview"
	RuleProductsOverview = "products-overview"
	RuleShippingOverview = "shipping-overview"
	RuleFallback         = "fallback"
)

// Rule pairs a predicate over the normalized input with the reply it
// produces. Rules are evaluated in slice order and the first match wins.
type Rule struct {
	Name    string
	Match   func(text string) bool
	Respond func(text string) Reply
}

// Picker returns an index in [0, n). It selects between equivalent reply
// variants.
type Picker func(n int) int

// matcher tests whole words or phrases, case-insensitively.
type matcher struct {
	re *regexp.Regexp
}

func words(terms ...string) matcher {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(t), " ", `\s+`)
	}
	return matcher{re: regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)}
}

func (m matcher) in(text string) bool {
	return m.re.MatchString(text)
}

var (
	greetingWords  = words("hello", "hi", "hey", "hiya", "greetings", "good morning", "good afternoon", "good evening")
	smallTalkWords = words("how are you", "how's it going", "how is it going", "how are things")

	priceWords = words("price", "prices", "pricing", "cost", "costs", "how much")

	orderWords    = words("order", "orders", "track", "tracking", "cancel", "payment", "payments", "pay", "card")
	trackWords    = words("track", "tracking", "status", "where is")
	cancelWords   = words("cancel", "cancelled", "cancellation")
	paymentWords  = words("payment", "payments", "pay", "card")
	deliveryWords = words("deliver", "delivery", "delivered", "arrive", "arrives")

	supportWords = words("help", "support", "problem", "problems", "issue", "issues", "complaint",
		"human", "agent", "person", "someone", "refund", "refunds", "return", "returns")
	handoffWords = words("human", "agent", "person", "someone")
	refundWords  = words("refund", "refunds", "return", "returns")

	areaWords     = words("delivery area", "delivery areas", "deliver to", "areas")
	locationWords = words("where", "location", "located", "address")
	hoursWords    = words("hours", "open", "opening", "close", "closing")
	discountWords = words("discount", "discounts", "coupon", "promo", "sale")
	infoWords     = words("delivery area", "delivery areas", "deliver to", "areas", "where", "location", "located",
		"address", "hours", "open", "opening", "close", "closing", "discount", "discounts", "coupon", "promo", "sale")

	orderingOverviewWords = words("ordering", "checkout", "cart", "purchase", "buy", "buying")
	productsOverviewWords = words("product", "products", "catalog", "catalogue", "sell", "selling", "offer", "items", "range", "stock")
	shippingOverviewWords = words("shipping", "ship", "shipment", "courier", "postage", "deliver", "delivery", "delivered")
)

var productMatchers = func() []matcher {
	out := make([]matcher, len(productLines))
	for i, p := range productLines {
		out[i] = words(p.words...)
	}
	return out
}()

// DefaultRules builds the assistant's rule list. The order is part of the
// contract: more specific rules precede the broad category overviews.
func DefaultRules(store knowledge.Store, pick Picker) []Rule {
	return []Rule{
		{
			Name:  RuleGreeting,
			Match: greetingWords.in,
			Respond: func(string) Reply {
				return Reply{Text: greetings[pick(len(greetings))] + " " + helpOffer}
			},
		},
		{
			Name:    RuleSmallTalk,
			Match:   smallTalkWords.in,
			Respond: func(string) Reply { return Reply{Text: smallTalkReply} },
		},
		{
			Name: RuleProduct,
			// a bare price question about shipping belongs to the shipping overview
			Match: func(text string) bool {
				if productIndex(text) >= 0 {
					return true
				}
				return priceWords.in(text) && !shippingOverviewWords.in(text)
			},
			Respond: func(text string) Reply {
				if i := productIndex(text); i >= 0 {
					return Reply{Text: productLines[i].line}
				}
				return firstAnswer(store, knowledge.Products)
			},
		},
		{
			Name:  RuleOrder,
			Match: orderWords.in,
			Respond: func(text string) Reply {
				switch {
				case trackWords.in(text):
					return Reply{Text: orderTrackingReply}
				case cancelWords.in(text):
					return Reply{Text: orderCancelReply}
				case paymentWords.in(text):
					return Reply{Text: orderPaymentReply}
				case deliveryWords.in(text):
					return Reply{Text: orderDeliveryReply}
				default:
					return Reply{Text: orderClarifyReply}
				}
			},
		},
		{
			Name:  RuleSupport,
			Match: supportWords.in,
			Respond: func(text string) Reply {
				switch {
				case handoffWords.in(text):
					return Reply{Text: supportHandoffReply}
				case refundWords.in(text):
					return Reply{Text: supportRefundReply}
				default:
					return Reply{Text: supportDefaultReply}
				}
			},
		},
		{
			Name:  RuleGeneralInfo,
			Match: infoWords.in,
			Respond: func(text string) Reply {
				switch {
				case areaWords.in(text):
					return Reply{Text: infoAreaReply}
				case locationWords.in(text):
					return Reply{Text: infoLocationReply}
				case hoursWords.in(text):
					return Reply{Text: infoHoursReply}
				default:
					return Reply{Text: infoDiscountReply}
				}
			},
		},
		overviewRule(RuleOrderingOverview, orderingOverviewWords, store, knowledge.Ordering),
		overviewRule(RuleProductsOverview, productsOverviewWords, store, knowledge.Products),
		overviewRule(RuleShippingOverview, shippingOverviewWords, store, knowledge.Shipping),
	}
}

func overviewRule(name string, m matcher, store knowledge.Store, key string) Rule {
	return Rule{
		Name:  name,
		Match: m.in,
		Respond: func(string) Reply {
			category, ok := store.FindByKey(key)
			if !ok {
				return Reply{Text: fallbackReply}
			}
			return Overview(category)
		},
	}
}

func productIndex(text string) int {
	for i, m := range productMatchers {
		if m.in(text) {
			return i
		}
	}
	return -1
}

func firstAnswer(store knowledge.Store, key string) Reply {
	category, ok := store.FindByKey(key)
	if !ok || len(category.Questions) == 0 {
		return Reply{Text: fallbackReply}
	}
	return Reply{Text: category.Questions[0].Answer}
}
