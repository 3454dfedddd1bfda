package knowledge

// Seed provides the built-in support topics of the farm shop.
func Seed() []Category {
	return []Category{
		{
			Key:   Products,
			Title: "Products",
			Icon:  "🧺",
			Questions: []QA{
				{
					Question: "What products do you sell?",
					Answer:   "We sell fresh produce straight from our farm: raw honey, free-range eggs, whole milk, farmhouse cheese, seasonal vegetables and pasture-raised meat. Prices are listed on each product page.",
				},
				{
					Question: "Are your products organic?",
					Answer:   "Our vegetables are grown without synthetic pesticides and our animals graze on open pasture. We are certified organic for vegetables and eggs; the rest follows the same practices while certification is in progress.",
				},
				{
					Question: "How fresh is the produce?",
					Answer:   "Vegetables are harvested the day before dispatch, eggs are collected daily and milk is bottled every morning.",
				},
			},
		},
		{
			Key:   Ordering,
			Title: "Ordering",
			Icon:  "🛒",
			Questions: []QA{
				{
					Question: "How do I place an order?",
					Answer:   "Add items to your cart from the catalog, open the cart and press Checkout. Fill in your delivery details, choose a payment method and confirm.",
				},
				{
					Question: "Which payment methods do you accept?",
					Answer:   "We accept Visa, Mastercard, bank transfer and cash on delivery for local orders.",
				},
				{
					Question: "Can I change my order after checkout?",
					Answer:   "Yes, as long as it has not been packed yet. Contact support within 2 hours of checkout with your order number.",
				},
			},
		},
		{
			Key:   Shipping,
			Title: "Shipping",
			Icon:  "🚚",
			Questions: []QA{
				{
					Question: "How long does delivery take?",
					Answer:   "Local deliveries arrive within 1-2 business days. Regional deliveries take 2-4 business days.",
				},
				{
					Question: "How much does shipping cost?",
					Answer:   "Shipping is free for orders over $50. Below that, local delivery is $5 and regional delivery is $9.",
				},
				{
					Question: "Do you ship perishable goods?",
					Answer:   "Yes. Dairy, meat and eggs travel in insulated boxes with ice packs and are only dispatched Monday to Wednesday so they never sit in a depot over the weekend.",
				},
			},
		},
		{
			Key:   Support,
			Title: "Support",
			Icon:  "💬",
			Questions: []QA{
				{
					Question: "How do I contact a person?",
					Answer:   "Call us on +1 555 0142 between 8am and 6pm, or email support@farmstead.example and a team member will reply within one business day.",
				},
				{
					Question: "What is your return policy?",
					Answer:   "If anything arrives damaged or spoiled, send us a photo within 48 hours and we will refund or replace it.",
				},
			},
		},
		{
			Key:   General,
			Title: "General Information",
			Icon:  "ℹ️",
			Questions: []QA{
				{
					Question: "Where is the farm located?",
					Answer:   "The farm is at 12 Meadow Lane, Greenvale. Visitors are welcome at the farm shop during opening hours.",
				},
				{
					Question: "What are your opening hours?",
					Answer:   "The farm shop is open Monday to Saturday, 8am to 6pm. The online shop takes orders around the clock.",
				},
				{
					Question: "Do you offer discounts?",
					Answer:   "Subscribers to our weekly box get 10% off every order, and first-time customers can use the code FRESH10 at checkout.",
				},
			},
		},
	}
}
