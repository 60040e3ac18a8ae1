// Package prompts holds the per-granularity prompt template pairs used by
// the capture pipeline.
package prompts

import (
	"strings"

	"github.com/sinanata/amygdala/models"
)

const simpleSystem = `You are a code summarizer. Produce a brief, one-paragraph summary of the given source file. Focus on the file's primary purpose and its role in the project. Do not include code snippets.`

const simpleUser = `File: {file_path}
Language: {language}

` + "```" + `
{content}
` + "```" + `

Summarize this file in one concise paragraph.`

const mediumSystem = `You are a code summarizer. Produce a structured summary of the given source file. Include:
1. A one-sentence overview of the file's purpose.
2. A bullet list of key classes, functions, or exports with one-line descriptions.
3. Notable dependencies or patterns used.
Keep the summary concise and useful for an AI assistant starting a new session.`

const mediumUser = `File: {file_path}
Language: {language}

` + "```" + `
{content}
` + "```" + `

Produce a structured summary of this file.`

const highSystem = `You are a thorough code analyst. Produce a detailed summary of the given source file. Include:
1. Overview: the file's purpose and its role in the broader project.
2. Public API: every public class, function, constant with type signatures and descriptions.
3. Internal logic: key algorithms, state management, and control flow.
4. Dependencies: imports and their purposes.
5. Edge cases: error handling, validation, and boundary conditions.
Keep the output in Markdown format with clear headings.`

const highUser = `File: {file_path}
Language: {language}

` + "```" + `
{content}
` + "```" + `

Produce a detailed analysis of this file.`

var templates = map[models.Granularity][2]string{
	models.GranularitySimple: {simpleSystem, simpleUser},
	models.GranularityMedium: {mediumSystem, mediumUser},
	models.GranularityHigh:   {highSystem, highUser},
}

// Get returns the (system prompt, user prompt template) pair for a
// granularity level. Unknown levels fall back to medium.
func Get(granularity models.Granularity) (string, string) {
	pair, ok := templates[granularity]
	if !ok {
		pair = templates[models.GranularityMedium]
	}
	return pair[0], pair[1]
}

// FormatUserPrompt substitutes the file context into the user prompt
// template. An empty language renders as "unknown".
func FormatUserPrompt(granularity models.Granularity, filePath, language, content string) string {
	_, tmpl := Get(granularity)
	if language == "" {
		language = "unknown"
	}
	return strings.NewReplacer(
		"{file_path}", filePath,
		"{language}", language,
		"{content}", content,
	).Replace(tmpl)
}
