package intent

const (
	smallTalkReply = "I'm doing great, thanks for asking! How can I help you today?"
	fallbackReply  = "I'm not sure I understood that. You can ask me about our products, ordering, shipping or support, or pick one of the topics below."
	helpOffer      = "How can I help you today?"

	orderTrackingReply = "You can track your order from My Account → Orders. Every shipped order also gets a tracking link by email."
	orderCancelReply   = "Orders can be cancelled free of charge until they are packed. Open My Account → Orders and press Cancel, or contact support with your order number."
	orderPaymentReply  = "We accept Visa, Mastercard, bank transfer and cash on delivery for local orders. Card payments are processed securely at checkout."
	orderDeliveryReply = "Orders are dispatched Monday to Wednesday. Local deliveries arrive within 1-2 business days, regional ones within 2-4."
	orderClarifyReply  = "Happy to help with your order! Do you want to track it, cancel it, or ask about payment or delivery?"

	supportHandoffReply = "I'll connect you with our team. Call +1 555 0142 (8am-6pm) or email support@farmstead.example and a person will get back to you within one business day."
	supportRefundReply  = "If anything arrives damaged or spoiled, send us a photo within 48 hours and we will refund or replace it."
	supportDefaultReply = "I'm here to help. Tell me a bit more about the problem, or type \"agent\" to reach a person from our team."

	infoAreaReply     = "We deliver across Greenvale and the surrounding region within 80 km of the farm. Enter your postcode at checkout to confirm."
	infoLocationReply = "The farm is at 12 Meadow Lane, Greenvale. The farm shop is right next to the main barn."
	infoHoursReply    = "The farm shop is open Monday to Saturday, 8am to 6pm. The online shop takes orders around the clock."
	infoDiscountReply = "Weekly box subscribers get 10% off every order, and first-time customers can use the code FRESH10 at checkout."
)

var greetings = []string{
	"Hello! 👋",
	"Hi there!",
	"Hey, welcome to Farmstead!",
}

// product lines are checked in order; the first keyword hit wins.
var productLines = []struct {
	words []string
	line  string
}{
	{[]string{"honey"}, "Our raw wildflower honey is $12 per 500g jar."},
	{[]string{"egg", "eggs"}, "Free-range eggs are $6 per dozen, collected daily."},
	{[]string{"milk"}, "Whole farm milk is $3.50 per litre, bottled every morning."},
	{[]string{"cheese", "cheddar"}, "Farmhouse cheddar is $9 per 250g wedge, aged for six months."},
	{[]string{"vegetable", "vegetables", "veg", "veggies"}, "Our seasonal vegetable box is $25 and feeds a family of four for a week."},
	{[]string{"meat", "beef", "lamb", "chicken"}, "Pasture-raised beef mince is $14 per kg. Lamb and chicken cuts are priced on their product pages."},
}
