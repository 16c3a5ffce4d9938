package constant

// RefusalMessage is the fixed reply for denylisted or unroutable requests.
const RefusalMessage = "I can't help with that request."

// RagRefusalMessage is shown when the docs question trips the denylist.
const RagRefusalMessage = "I can't help with that request. Please ask a safe question about the docs."

// RagSystemPrompt constrains answers to the retrieved context.
const RagSystemPrompt = "Use ONLY the context to answer. Max 100 words."

// RouterSystemPrompt enumerates the closed tool registry and the strict
// output format the routing model must follow.
const RouterSystemPrompt = `You are a helpful assistant that maps user questions to tool calls.
You must output ONLY a JSON LIST of tool objects.
Do not write any code, explanations, or definitions.

Available Tools:
- get_order(order_id): Returns full order details (status, total, email). order_id is uppercase.
- refund_order(order_id, amount): Refund an order. amount is a float.
- spend_in_period(customer_id, start, end): Calculate spend. dates in YYYY-MM-DD.
- refuse(): Use if the request is unsafe, malformed, or ambiguous.

Rules:
- Do NOT invent tools (e.g., no get_email, no get_status). get_order returns ALL details.
- To get EMAIL or STATUS, use get_order.
- Return a LIST [...] containing one object.
- Do NOT nest args inside args. The structure is flat: {"tool": "...", "args": {...}}.

Examples:
User: Refund order B77 for 5.40
Output: [{"tool": "refund_order", "args": {"order_id": "B77", "amount": 5.40}}]

User: Status of order C9
Output: [{"tool": "get_order", "args": {"order_id": "C9"}}]`

// ReceiptExtractionPrompt is the fixed instruction for the vision model.
const ReceiptExtractionPrompt = `You are reading a shopping receipt.

Extract the purchased items and the FINAL total amount.
If a total is crossed out, ignore it and return the current total.

Return JSON ONLY in this exact format:
{
  "items": [
    {"name": "...", "qty": 1, "unit_price": "0.00", "line_total": "0.00"}
  ],
  "total": "0.00"
}`

// Denylist terms. Substring matching only: a usability guard, not a
// security boundary.
var (
	RagDenylist   = []string{"secret", "reveal", "dump", "password", "show files"}
	ToolsDenylist = []string{"reveal email", "all email", "dump", "export", "all data"}
)
