package aiextract

import (
	"fmt"
	"strings"
)

// BuildPrompt assembles the instruction prompt sent alongside the document.
// It demands a bare JSON array, defines the per-element schema, and encodes
// the domain policy as explicit text: sign convention, credit keywords,
// table/statement handling, date reuse within a block, and the rule that
// descriptions must never themselves contain a date token.
func BuildPrompt(extractedText string, isImage, isPDF bool, categoryNames []string) string {
	var b strings.Builder

	b.WriteString(`You output ONLY a JSON array.

The source may be:
- A standard receipt (image or PDF)
- A PDF STATEMENT or TABLE listing multiple transactions (columns like Date | Description | Amount | Category | Debit | Credit)
Your job: Normalize EVERY transaction row into the JSON array.

Each element MUST be:
{ "amount": number, "type": "expense" | "credit", "category": "category name", "raw": "short source snippet", "date": "YYYY-MM-DD" | null }

TABLE / STATEMENT RULES (PDF especially):
- Detect header lines (Date, Description, Amount, Debit, Credit, DR, CR, Category, Balance).
- Ignore header, subtotal, running balance, opening/closing balance rows.
- If separate Debit / Credit columns: choose the non-empty one. Debit => expense (negative), Credit => credit (positive).
- Parentheses or leading minus indicate negative.
- Remove currency symbols and thousands-separator commas.
- One JSON object per distinct transaction line.

DATE RULES:
- Use per-row date if present; normalize to YYYY-MM-DD (pad month/day).
- Accept formats: YYYY-MM-DD, YYYY/MM/DD, DD-MM-YYYY, MM/DD/YY, etc. Convert 2-digit years (70-99 -> 19xx, 00-69 -> 20xx).
- If a row omits the date but belongs to a block where a previous row had a date, reuse that date.
- If no plausible date exists, set "date": null (do not invent).

AMOUNT / TYPE RULES:
- Expenses must be negative numbers.
- Credits (refund, credit, return, reversal, salary, deposit) must be positive.
- If only a total appears and no line items, output a single entry.
- Do NOT add balance lines as transactions.

CATEGORY RULES:
`)
	fmt.Fprintf(&b, "- \"category\" must be exactly one of: %s.\n", strings.Join(categoryNames, ", "))
	b.WriteString(`- Pick the best fit from the description; when unsure, leave it as an empty string.

GENERAL:
- Output ONLY the JSON array (no markdown, no prose, no code fences).
- Keep "raw" concise (<= ~120 chars) summarizing the row.
- "raw" must NOT contain a date token; dates belong only in "date".
`)

	if isImage {
		b.WriteString("\nThe image binary is attached.\n")
	}
	if isPDF {
		b.WriteString("\nSource is a PDF; may contain multi-row tables or statements.\n")
	}
	if extractedText != "" {
		fmt.Fprintf(&b, "\nExtracted text sample (may be truncated): \"\"\"%s\"\"\"\n", extractedText)
	}

	return strings.TrimSpace(b.String())
}
