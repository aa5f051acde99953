package dialogue

import (
	"hash/fnv"

	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/intent"
)

// headers open a genre, mood or occasion reply.
var headers = map[intent.Intent]string{
	intent.ActionMovies:      "**Action Movie Recommendations!**\n\nGet ready for adrenaline-pumping action! Here are the best action films:\n\n",
	intent.RomanticMovies:    "**Romantic Movie Recommendations!**\n\nPerfect for love stories! Here are beautiful romance films:\n\n",
	intent.ComedyMovies:      "**Comedy Movie Recommendations!**\n\nTime for laughter! Here are hilarious comedy movies:\n\n",
	intent.HorrorMovies:      "**Horror Movie Recommendations!**\n\nFeeling brave? Here are scary horror films:\n\n",
	intent.SciFiMovies:       "**Sci-Fi Movie Recommendations!**\n\nReady for adventure! Here are amazing sci-fi movies:\n\n",
	intent.DramaMovies:       "**Drama Movie Recommendations!**\n\nEmotional and powerful stories! Here are great drama films:\n\n",
	intent.FantasyMovies:     "**Fantasy Movie Recommendations!**\n\nMagical worlds await! Here are enchanting fantasy films:\n\n",
	intent.AnimationMovies:   "**Animation Movie Recommendations!**\n\nAnimated wonders! Here are fantastic animated films:\n\n",
	intent.FamilyMovies:      "**Family Movie Recommendations!**\n\nPerfect for everyone! Here are family-friendly films:\n\n",
	intent.DocumentaryMovies: "**Documentary Recommendations!**\n\nReal stories! Here are informative documentaries:\n\n",

	intent.SadMood:       "I understand you're feeling down. Let me cheer you up with some uplifting movies!\n\n",
	intent.HappyMood:     "Great to hear you're happy! Let's keep the good vibes going with these films!\n\n",
	intent.BoredMood:     "Boredom is no fun! Let me suggest some exciting movies to spark your interest!\n\n",
	intent.StressedMood:  "I know stress can be tough. Here are some relaxing movies to help you unwind!\n\n",
	intent.RomanticMood:  "Romance is in the air! Here are beautiful love stories for you!\n\n",
	intent.EnergeticMood: "Full of energy! Let's channel that into some action-packed movies!\n\n",
	intent.RelaxedMood:   "Perfect relaxed mood! Here are some calming movies to match!\n\n",

	intent.Birthday:       "**Happy Birthday!**\n\nSpecial day calls for special movies! Here are celebratory films:\n\n",
	intent.DateNight:      "**Perfect Date Night Movies!**\n\nRomantic films for a wonderful evening:\n\n",
	intent.FriendsHangout: "**Great Movies with Friends!**\n\nFun films perfect for group watching:\n\n",
	intent.FamilyTime:     "**Family Movie Night!**\n\nMovies everyone will enjoy together:\n\n",
	intent.AloneTime:      "**Perfect Solo Movies!**\n\nGreat films for some quality me-time:\n\n",
}

const (
	emptyInput = "Please enter a message."
	apology    = "Sorry, something went wrong while answering that. Please try again."

	askTitle  = "Which movie would you like similar recommendations for? Try: 'movies like Inception'"
	askPerson = "Which actor or director are you interested in? Try: 'movies with Tom Cruise'"
	askYear   = "Which year are you interested in? Try: 'movies from 2020'"

	popularHeader   = "**Most Popular Movies Right Now!**\n\n"
	awardHeader     = "**Award-Winning & Highly Rated Movies!**\n\n"
	moodFallback    = "Let me recommend some popular movies for you!\n\n"
	thanksReply     = "You're very welcome! Let me know if you need more recommendations!"
	farewellReply   = "Goodbye! Hope you enjoy your movie time!"
	jokeHeader      = "**Movie Joke:**\n\n"
	factHeader      = "**Movie Fact:**\n\n"
	storyReply      = "**Short Story:**\n\nOnce upon a time in Hollywood, a young filmmaker dreamed of creating the perfect movie... and with great stories and amazing visuals, they entertained millions!"
	bengaliSadHead  = "আপনার মন ভালো করার জন্য সিনেমা\n\n"
	bengaliTopHead  = "সেরা সিনেমা রেকমেন্ডেশন\n\n"
	bengaliFallback = "আমি আপনার সিনেমা বিশেষজ্ঞ! আপনি কি ধরনের সিনেমা দেখতে চান?"
	bengaliSadWord  = "মন খারাপ"
	bengaliFilmWord = "সিনেমা"
)

var greetings = []string{
	"Hello! I'm your complete movie expert! I can recommend movies for ANY situation!",
	"Hi there! Tell me what you're looking for - any genre, mood, or occasion!",
	"Hey! I'm here to help you find perfect movies for ANY scenario! What do you need?",
}

var jokes = []string{
	"Why don't scientists trust atoms? Because they make up everything!",
	"Why did the scarecrow win an award? He was outstanding in his field!",
	"What do you call a fake noodle? An impasta!",
}

var facts = []string{
	"The first movie ever made was in 1888 - 'Roundhay Garden Scene' was only 2.11 seconds long!",
	"The highest-grossing movie of all time is 'Avatar' with $2.8 billion!",
	"The word 'cinema' comes from the Greek word 'kinema' meaning movement!",
}

// movieWords route unclassified utterances to the popular list.
var movieWords = []string{"movie", "film", "watch", "see", "cinema", "theater"}

const helpText = `**COMPLETE MOVIE EXPERT HELP**

I can handle ANY movie request:

**BY GENRE:**
• Action, Comedy, Romance, Horror, Sci-Fi
• Drama, Fantasy, Animation, Family, Documentary

**BY MOOD:**
• Sad → Happy/Uplifting movies
• Happy → More joyful films
• Bored → Exciting action
• Stressed → Relaxing comedies
• Romantic → Beautiful love stories

**BY OCCASION:**
• Birthday celebrations
• Date night movies
• Friends hangout
• Family time
• Alone time

**SEARCH:**
• "Movies like Inception"
• "Movies with Tom Cruise"
• "Movies from 2020"
• "Popular movies"
• "Award-winning films"

**GENERAL:**
• Jokes, Facts, Stories
• Time, Date information
• Any conversation!

**MULTILINGUAL:**
• English and Bengali supported

**Just type ANYTHING naturally!**`

// pick selects a reply from options keyed on the utterance, so the same
// text always gets the same answer.
func pick(options []string, text string) string {
	h := fnv.New32a()
	h.Write([]byte(text))
	return options[h.Sum32()%uint32(len(options))]
}
