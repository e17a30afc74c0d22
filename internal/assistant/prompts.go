package assistant

import (
	"fmt"
	"strings"

	"mediaccess/internal/knowledge"
)

// MaxDocumentChars bounds the document text sent for summarization
const MaxDocumentChars = 10000

// Text returned when the model cannot be reached
const (
	FallbackAnalysis   = "Unable to analyze log at this time due to an API error."
	FallbackSummary    = "Unable to generate summary at this time."
	FallbackCompliance = "Unable to connect to the compliance AI assistant."
	FallbackChat       = "I apologize, but I encountered an error connecting to the system knowledge base."
)

// Text returned when the model answers with nothing
const (
	EmptyAnalysis   = "Analysis failed."
	EmptySummary    = "Summary generation failed."
	EmptyCompliance = "No response generated."
	EmptyChat       = "No response generated."
)

// Greeting opens every chat transcript. It is never sent to the model.
const Greeting = "Hello! I am the MediAccess System Assistant. Ask me anything about the project proposal, technical specs, or financial projections."

const noLiveContext = "No live system data available."

func analysisPrompt(logData string) string {
	return fmt.Sprintf(`You are a cybersecurity expert specializing in HIPAA and healthcare compliance.
Analyze the following security log entry from the MediAccess system.
Explain the potential risk and suggest a mitigation strategy.

Log Data: %s

Keep the response concise (under 100 words).`, logData)
}

func compliancePrompt(question string) string {
	return fmt.Sprintf(`You are a compliance officer for MediAccess, a biometric healthcare authentication platform.
Answer the following question regarding HIPAA/GDPR compliance or the MediAccess system architecture.

Context:
- MediAccess uses Multi-factor authentication (MFA) with facial recognition and fingerprinting.
- Data is encrypted end-to-end.
- Passwords hashed with bcrypt.
- Biometric data is tokenized and stored securely.

Question: %s`, question)
}

// truncateRunes cuts s to at most n characters without splitting a rune
func truncateRunes(s string, n int) (string, bool) {
	if len(s) <= n {
		return s, false
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	return s, false
}

func summaryPrompt(doc string) string {
	body, _ := truncateRunes(doc, MaxDocumentChars)
	return fmt.Sprintf(`You are an investment analyst and technical expert. Summarize the following project documentation for a potential investor. Highlight the value proposition, technical feasibility, and financial outlook.

Document Content:
%s... (truncated for API limits if necessary)

Provide a bulleted executive summary.`, body)
}

// SystemInstruction assembles the chat system prompt from the live state
// digest and the knowledge base
func SystemInstruction(liveContext string, kb *knowledge.Base) string {
	if strings.TrimSpace(liveContext) == "" {
		liveContext = noLiveContext
	}

	var b strings.Builder
	b.WriteString("You are the MediAccess System Assistant. You are an expert on the MediAccess project and its operational procedures.\n\n")
	b.WriteString("Your goal is to assist users (Staff, Admins, Investors, Partners) by answering questions about the project's proposal, technical architecture, financials, roadmap, and operational support.\n\n")
	b.WriteString("=== LIVE SYSTEM STATUS ===\n")
	b.WriteString(strings.TrimRight(liveContext, "\n"))
	b.WriteString("\n(Use this data to answer questions about current patients, alerts, tasks, or revenue)\n\n")

	if kb != nil {
		for _, s := range knowledge.Sections {
			fmt.Fprintf(&b, "=== %s ===\n%s\n\n", s, kb.SectionText(s))
		}
	}

	b.WriteString(`Rules:
1. Be helpful, professional, and concise.
2. If a user asks about something not in the documents, state that it is outside the current scope of the documentation.
3. Format your answers nicely with Markdown.
4. If a user asks for specific technical commands (e.g., Linux, Network), use the Cheat Sheets provided.
5. If a user asks about security protocols or troubleshooting, refer to the Cybersecurity Guide.
6. If a user asks about help desk operations, refer to the Help Desk Guide.
`)
	return b.String()
}
