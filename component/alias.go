package component

// Aliases kept from the pre-vendor-split API, where "the" ASR/LLM/TTS config
// meant the Deepgram/OpenAI/ElevenLabs one. Type aliases only; no runtime
// behavior is implied.
type (
	// ASRConfig is an alias for DeepgramASR.
	ASRConfig = DeepgramASR
	// LLMConfig is an alias for OpenAILLM.
	LLMConfig = OpenAILLM
	// TTSConfig is an alias for ElevenLabsTTS.
	TTSConfig = ElevenLabsTTS
)
