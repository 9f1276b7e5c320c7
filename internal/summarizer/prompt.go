package summarizer

// promptRevision participates in the cache fingerprint so that prompt changes
// invalidate previously cached partial summaries.
const promptRevision = "v1"

const chunkSystemPrompt = "You are an expert in analyzing and synthesizing technical content."

const chunkPromptFmt = `Write a concise partial summary that captures:
- Main ideas and key points
- Relevant figures and numbers
- Important conclusions

Text: %s`

const synthesisSystemPrompt = "You are a professional editor of technical content."

const synthesisPromptFmt = `Write a professional summary with:
1. A main title in **bold**
2. A contextual introduction
3. Thematic sections with subheadings
4. Key points as bullet lists
5. Highlighted conclusions

Content: %s`
