package studygen

import "tubestudy/internal/domain"

// researchExcerptRunes is how much of the transcript the research task sees.
const researchExcerptRunes = 1000

type persona struct {
	Role      string
	Goal      string
	Backstory string
}

var (
	videoResearcher = persona{
		Role:      "Video Researcher",
		Goal:      "Extract relevant information from YouTube videos about the topic discussed",
		Backstory: "An expert researcher who specializes in analyzing video content and identifying key concepts and frameworks.",
	}

	conceptReinforcementSpecialist = persona{
		Role: "Concept Reinforcement Specialist",
		Goal: "Generate high-quality MCQs to help students revise and test their understanding of learned concepts",
		Backstory: "You are a seasoned educator and assessment designer with over a decade of experience in creating " +
			"effective multiple-choice questions. You specialize in summarizing key points and turning them into " +
			"well-structured, concept-checking questions that enhance retention and understanding.",
	}

	memoryReinforcementSpecialist = persona{
		Role: "Memory Reinforcement Specialist",
		Goal: "Generate concise, high-retention flashcards that simplify and summarize key concepts for effective study",
		Backstory: "You are an experienced learning strategist and educator who specializes in breaking down complex ideas " +
			"into simple, digestible flashcards. With a focus on clarity and brevity, you help students remember " +
			"essential facts and concepts through effective question-answer pairs that improve recall and understanding.",
	}
)

const researchDescription = `Analyze the YouTube video transcript for information about the main topics discussed.

Steps:
1. Read and process the transcript: {transcript_excerpt}...
2. Analyze the content for key concepts mentioned
3. Focus on:
   - Main topics and concepts discussed
   - Key features of each concept point-wise
   - Use cases or applications shown
   - Important definitions and explanations

Provide a comprehensive summary of all key concepts discussed in the video.`

const researchExpectedOutput = "A detailed summary of the key concepts mentioned in the video, including their features, applications, and any important details."

const mcqDescription = `Create a set of 10 multiple-choice questions (MCQs) to help a student review and test their
understanding of the concepts covered in the video. Ensure questions cover all major topics and vary in difficulty.

Format each question EXACTLY as follows:

1. **Question text here?**
    (A) Option A text
    (B) Option B text  
    (C) Option C text
    (D) Option D text
    **Correct Answer: (X)** Brief explanation here.

Make sure to include the ** markers around "Correct Answer:" and maintain consistent formatting.`

const mcqExpectedOutput = `A markdown-formatted quiz containing 10 MCQs.
Each question should include:
- A clearly worded question stem wrapped in **
- Four options labeled (A) to (D)
- The correct answer in format **Correct Answer: (X)**
- A brief explanation for the correct answer

Ensure the questions cover all major ideas and build in difficulty from basic recall to conceptual application.`

const flashcardDescription = `Create a set of 15 flashcards to help a student recall and retain key concepts covered in the video.
Each flashcard should consist of a concise question and a clear, direct answer. Prioritize clarity, accuracy, and
coverage of all major ideas or definitions.

Format each flashcard EXACTLY as follows:

1. **What is the main concept?**
**Answer:** Your concise and accurate answer goes here.

Make sure to include the ** markers around both the question and "Answer:" and maintain consistent formatting throughout.`

const flashcardExpectedOutput = `A markdown-formatted list of 15 flashcards.
Each flashcard must:
- Begin with numbered format: 1. **Question goes here?**
- Be followed by **Answer:** and then the answer content
- Cover key concepts, terms, or facts from the content
- Use simple, accessible language for better retention

Ensure coverage of all major points, including definitions, comparisons, processes, and conceptual highlights.`

type generationTemplate struct {
	name           string
	persona        persona
	description    string
	expectedOutput string
}

var generationTemplates = map[domain.ArtifactKind]generationTemplate{
	domain.ArtifactMCQ: {
		name:           "mcq",
		persona:        conceptReinforcementSpecialist,
		description:    mcqDescription,
		expectedOutput: mcqExpectedOutput,
	},
	domain.ArtifactFlashcard: {
		name:           "flashcards",
		persona:        memoryReinforcementSpecialist,
		description:    flashcardDescription,
		expectedOutput: flashcardExpectedOutput,
	},
}
