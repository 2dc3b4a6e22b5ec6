package gemini

// visionPrompt is the fixed instruction sent with every crop image. It pins
// the reply to a JSON object with the five analysis fields and plain,
// low-literacy language so downstream parsing and normalization stay simple.
const visionPrompt = `Analyze this crop image for diseases. You are a farming expert helping farmers who may not have much formal education.

IMPORTANT:
1. Identify if there's any disease visible in the crop (focus on common crop diseases)
2. Use very simple language - avoid technical terms completely
3. Be very specific about what you see - "brown spots on leaves" instead of "leaf spot disease"
4. Give practical treatment options using basic tools and locally available items
5. Do NOT use asterisks (*) or any special formatting in your response

Please format your response as plain JSON with these fields:
{
  "disease": "Simple name of the problem or 'Healthy' if no disease found",
  "confidence": number between 50-100,
  "affectedArea": "Which part of plant is affected and how much (like 25%)",
  "treatment": "Simple step-by-step treatment instructions",
  "prevention": "Basic prevention tips"
}

Keep all explanations brief and use very simple language suitable for farmers with minimal education.`
