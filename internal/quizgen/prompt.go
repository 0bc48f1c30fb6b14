package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are specialized in generating custom quizzes for the Kahoot platform.`

// shapeExample is the worked example of the required output shape,
// embedded verbatim in every prompt.
const shapeExample = `[
    {
        "question": "Question text (max 120 characters)",
        "answers": [
            {
                "text": "Answer option 1 (max 75 characters)",
                "is_correct": false
            },
            {
                "text": "Answer option 2 (max 75 characters)",
                "is_correct": false
            },
            {
                "text": "Answer option 3 (max 75 characters)",
                "is_correct": false
            },
            {
                "text": "Answer option 4 (max 75 characters)",
                "is_correct": true
            }
        ]
    }
]`

// clampCount bounds a requested question count to [1, MaxQuestionsPerCall].
// The builder only ever asks for at most MaxQuestionsPerCall questions;
// a caller wanting more is responsible for chunking into multiple calls.
func clampCount(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxQuestionsPerCall {
		return MaxQuestionsPerCall
	}
	return n
}

// buildUserMessage assembles the instruction text for one generation
// call. Deterministic given identical inputs: all randomness in the
// pipeline lives in the model's sampling and the export shuffle.
func buildUserMessage(req Request) string {
	count := clampCount(req.Count)

	objectives := strings.TrimSpace(req.Objectives)
	if objectives == "" {
		objectives = "None specified"
	}
	audience := strings.TrimSpace(req.Audience)
	if audience == "" {
		audience = "General"
	}

	var b strings.Builder

	b.WriteString("Create a quiz based on the given text or topic.\n")
	b.WriteString("Create questions and four potential answers for each question.\n")
	fmt.Fprintf(&b, "Ensure that each question does not exceed %d characters.\n", MaxQuestionLen)
	fmt.Fprintf(&b, "VERY IMPORTANT: Ensure each answer remains within %d characters.\n", MaxAnswerLen)
	b.WriteString("Follow these rules strictly:\n")
	b.WriteString("1. Generate questions about the provided text or topic.\n")
	b.WriteString("2. Create questions and answers in the same language as the input text.\n")
	b.WriteString("3. Provide output in the specified JSON format.\n")
	fmt.Fprintf(&b, "4. Generate exactly %d questions.\n", count)
	fmt.Fprintf(&b, "5. Learning Objectives: %s\n", objectives)
	fmt.Fprintf(&b, "6. Audience: %s\n", audience)
	b.WriteString("\nText or topic: ")
	b.WriteString(strings.TrimSpace(req.Topic))
	b.WriteString("\n\nJSON format:\n")
	b.WriteString(shapeExample)
	b.WriteString("\n\nImportant:\n")
	b.WriteString("1. Ensure the JSON is a valid array of question objects.\n")
	fmt.Fprintf(&b, "2. Each question must have exactly %d answer options.\n", AnswersPerQuestion)
	b.WriteString("3. Only one answer per question should be marked as correct (is_correct: true).\n")
	b.WriteString("4. Do not include any comments or ellipsis (...) in the actual JSON output.\n")
	b.WriteString("5. Repeat the structure for each question, up to the specified number of questions.\n")
	b.WriteString("6. Ensure the entire response is a valid JSON array.\n")

	return b.String()
}
