package devotion

import (
	"github.com/haivivi/devotional/pkg/genx"
)

// Content kinds in the request table.
const (
	KindStudy  genx.Kind = "study"
	KindQuiz   genx.Kind = "quiz"
	KindSpeech genx.Kind = "speech"
)

// Default models and voice.
const (
	DefaultTextModel   = "gemini-3-flash-preview"
	DefaultSpeechModel = "gemini-2.5-flash-preview-tts"
	DefaultVoice       = "Kore"
)

const studyInstruction = `Você é um mentor cristão sábio e acolhedor.
Sua tarefa é gerar um estudo bíblico diário estritamente no formato JSON.
O estudo deve incluir:
1. 'verse': O texto do versículo.
2. 'reference': A referência bíblica (ex: João 3:16).
3. 'context': Uma explicação simples do contexto histórico ou teológico (máx 3 parágrafos).
4. 'application': Aplicação prática para o dia a dia.
5. 'prayer': Uma oração curta e poderosa.
6. 'theme': Um título curto para o tema.`

const quizInstruction = "Crie uma pergunta de múltipla escolha sobre a Bíblia no formato JSON com: question, options (array de 4), correctIndex (0-3), e explanation."

func studyPrompt(theme string) string {
	if theme != "" {
		return "Crie um estudo bíblico profundo sobre o tema: " + theme + "."
	}
	return "Gere um estudo bíblico diário inspirador."
}

func quizPrompt(string) string {
	return "Gere uma pergunta de quiz bíblico desafiadora mas educativa."
}

func speechPrompt(text string) string {
	return "Leia este devocional de forma calma e inspiradora: " + text
}

// DefaultRequests returns a fresh copy of the request table for every
// content kind.
func DefaultRequests() genx.Requests {
	quizSchema := genx.MustSchemaFor[Quiz]()
	if opts := quizSchema.Properties["options"]; opts != nil {
		n := QuizOptions
		opts.MinItems, opts.MaxItems = &n, &n
	}
	return genx.Requests{
		KindStudy: {
			Model:             DefaultTextModel,
			SystemInstruction: studyInstruction,
			Prompt:            studyPrompt,
			Output:            genx.OutputJSON,
			Schema:            genx.MustSchemaFor[Study](),
		},
		KindQuiz: {
			Model:             DefaultTextModel,
			SystemInstruction: quizInstruction,
			Prompt:            quizPrompt,
			Output:            genx.OutputJSON,
			Schema:            quizSchema,
		},
		KindSpeech: {
			Model:  DefaultSpeechModel,
			Prompt: speechPrompt,
			Output: genx.OutputAudio,
			Voice:  DefaultVoice,
		},
	}
}
