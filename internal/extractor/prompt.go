// ABOUTME: Few-shot prompt template for workout extraction.
// ABOUTME: The template is fixed; only the new input text varies between calls.
package extractor

const exampleInput1 = `
Prior notes:
- Pretty tired after three nights of bad sleep.
Pull ups
- 6x4 15kg
Inclined Bench press
- 3xRPE 10 50kg 9-7-6
- AMRAP 40kg 7reps
- Notes: left shoulder felt fine
`

const exampleOutput1 = `{
  "metrics": [
    {
      "metric_name": "SleepQuality",
      "metric_value": "poor (3 nights bad sleep)",
      "sentiment": "negative"
    }
  ],
  "exercises": [
    {
      "exercise_name": "Pull ups",
      "sets": 6,
      "reps": 4,
      "weight": 15.0,
      "notes": []
    },
    {
      "exercise_name": "Inclined Bench press",
      "sets": 3,
      "reps": null,
      "weight": 50.0,
      "notes": [
        {
          "note_text": "AMRAP 40kg for 7 reps",
          "sentiment": "neutral"
        },
        {
          "note_text": "left shoulder felt fine",
          "sentiment": "positive"
        }
      ]
    }
  ],
  "general_notes": []
}`

const exampleInput2 = `
Prior notes:
- Body state: left shoulder less inflamed, left trap pain
Military press
- 6x6 50kg
- Notes: felt good. Last set @8.5
Pull ups
- 6x4 +12.5kg
`

const exampleOutput2 = `{
  "metrics": [
    {
      "metric_name": "ShoulderInflammation",
      "metric_value": "less inflamed",
      "sentiment": "improving"
    },
    {
      "metric_name": "TrapPain",
      "metric_value": "present",
      "sentiment": "neutral"
    }
  ],
  "exercises": [
    {
      "exercise_name": "Military press",
      "sets": 6,
      "reps": 6,
      "weight": 50.0,
      "notes": [
        {
          "note_text": "felt good, last set @8.5",
          "sentiment": "positive"
        }
      ]
    },
    {
      "exercise_name": "Pull ups",
      "sets": 6,
      "reps": 4,
      "weight": 12.5,
      "notes": []
    }
  ],
  "general_notes": []
}`

const systemPrompt = `
You are a helpful assistant that extracts structured workout information from text logs.
We want valid JSON with keys: "metrics", "exercises", "general_notes".
- "metrics": daily metrics (sleep, pain, energy, etc.).
- "exercises": parse sets, reps, weight, plus any notes relevant to that exercise.
- "general_notes": additional remarks not tied to a specific exercise.

## EXAMPLE 1
Input:
` + exampleInput1 + `
Output (JSON):
` + exampleOutput1 + `

## EXAMPLE 2
Input:
` + exampleInput2 + `
Output (JSON):
` + exampleOutput2 + `

Now parse the following text. Respond with valid JSON only. DO NOT include the input text or the examples above in your response.
`

// SystemPrompt returns the fixed instruction block with both worked examples.
func SystemPrompt() string {
	return systemPrompt
}

// BuildPrompt appends rawText to the system prompt after the NEW INPUT
// marker, wrapped in triple quotes. rawText is inserted verbatim.
func BuildPrompt(rawText string) string {
	return systemPrompt + "\nNEW INPUT:\n\"\"\"" + rawText + "\"\"\"\n"
}
