package ai

import (
	"bytes"
	"text/template"
)

// DealsPrompt asks the model to search the web for current offers at a store
const DealsPrompt = `Search the web for active discounts and upcoming sale events for "{{.StoreName}}" in {{.Region}}.

Rules:
1. Only list student programs (UNiDAYS, Student Beans) when they are confirmed for "{{.StoreName}}".
2. Codes that only appear on community sites (Reddit, OzBargain, forums) get verificationStatus "To be verified (Community Report)" unless confirmed in the last 24 hours.
3. Prefer the store's own site and official partner portals as sources.
4. Cashback offers must come from ShopBack or TopCashback.
5. Report family and friends, warehouse or annual clearance events as type "sale".

Look for promo codes, discounted gift cards, cashback, membership or provider perks, and sale alerts.

Respond with ONLY valid JSON:
{
  "storeName": "{{.StoreName}}",
  "summary": "<one or two sentences>",
  "codes": [
    {
      "type": "code" | "giftcard" | "cashback" | "membership" | "perk" | "sale",
      "code": "<code or short label>",
      "description": "<what the offer gives>",
      "expiry": "<date or empty>",
      "sourceUrl": "<url>",
      "confidence": "high" | "medium" | "low",
      "verificationStatus": "<optional>",
      "lastVerified": "<optional>"
    }
  ]
}`

// EmailPrompt asks the model to draft a discount-request e-mail
const EmailPrompt = `Write a short, polite e-mail to the customer service team of "{{.StoreName}}".
The sender is an international student in {{.Region}}, a loyal fan of the brand on a tight budget.
Ask whether they offer a student discount, a one-time promo code or any other offer.
Keep it friendly and professional, never demanding.

Respond with ONLY valid JSON with the keys "subject" and "body".`

// DefaultRegion is the market searched for deals
const DefaultRegion = "Australia"

// StoreData holds data for the store prompts
type StoreData struct {
	StoreName string
	Region    string
}

// RenderPrompt renders a template with the provided data
func RenderPrompt(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// RenderDealsPrompt renders the deal search prompt
func RenderDealsPrompt(storeName string) (string, error) {
	return RenderPrompt(DealsPrompt, StoreData{StoreName: storeName, Region: DefaultRegion})
}

// RenderEmailPrompt renders the e-mail drafting prompt
func RenderEmailPrompt(storeName string) (string, error) {
	return RenderPrompt(EmailPrompt, StoreData{StoreName: storeName, Region: DefaultRegion})
}
