package intent

import "regexp"

// exactPhrases maps whole utterances to an intent ahead of rule evaluation.
var exactPhrases = map[string]Intent{
	"action":        ActionMovies,
	"action movies": ActionMovies,
	"romantic":      RomanticMovies,
	"romance":       RomanticMovies,
	"comedy":        ComedyMovies,
	"horror":        HorrorMovies,
	"sci-fi":        SciFiMovies,
	"drama":         DramaMovies,
	"fantasy":       FantasyMovies,
	"animation":     AnimationMovies,
	"family":        FamilyMovies,
	"documentary":   DocumentaryMovies,
	"sad":           SadMood,
	"happy":         HappyMood,
	"bored":         BoredMood,
	"stressed":      StressedMood,
	"birthday":      Birthday,
	"date":          DateNight,
}

type rule struct {
	intent   Intent
	group    Group
	patterns []*regexp.Regexp
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// rules are evaluated top to bottom against the lowercased utterance; the
// first intent with any matching pattern wins.
var rules = []rule{
	{ActionMovies, GroupGenre, compile(
		`action|action movies|action films|action genre`,
		`recommend action|suggest action|give action`,
		`action.*movie|movie.*action`,
		`explosion|fight|adventure|thriller|combat`,
		`fast.*furious|mission impossible|john wick|expendables`,
		`fighting|battle|war.*movie`,
		`want action|need action|looking for action`,
	)},
	{RomanticMovies, GroupGenre, compile(
		`romantic|romance|romantic movies|romance films`,
		`love story|love films|rom com|romantic comedy`,
		`relationship|date movie|couple movie`,
		`heart.*warming|emotional.*love`,
		`valentine|anniversary|date night`,
		`chick flick|love triangle`,
	)},
	{ComedyMovies, GroupGenre, compile(
		`comedy|comedy movies|funny films|humor`,
		`make me laugh|funny movie|hilarious`,
		`comedy.*movie|movie.*comedy`,
		`joke|humorous|light.*hearted`,
		`stand.*up|sitcom|comedy show`,
	)},
	{HorrorMovies, GroupGenre, compile(
		`horror|horror movies|scary films|frightening`,
		`ghost|zombie|vampire|monster|haunted`,
		`thriller|suspense|psychological`,
		`paranormal|supernatural|dark`,
		`nightmare|terror|fear`,
	)},
	{SciFiMovies, GroupGenre, compile(
		`sci-fi|science fiction|sci fi`,
		`future|space|alien|robot|android`,
		`star wars|star trek|avatar|matrix`,
		`technology|futuristic|time travel`,
		`galaxy|universe|cosmic`,
	)},
	{DramaMovies, GroupGenre, compile(
		`drama|dramatic|emotional`,
		`serious.*movie|intense.*film`,
		`story.*driven|character.*driven`,
		`real life|slice of life`,
	)},
	{FantasyMovies, GroupGenre, compile(
		`fantasy|magical|mythical`,
		`wizard|witch|dragon|magic`,
		`fairy tale|mythology|legend`,
		`harry potter|lord of the rings`,
	)},
	{AnimationMovies, GroupGenre, compile(
		`animation|animated|cartoon`,
		`pixar|disney|anime`,
		`kids movie|family animation`,
		`animated.*film`,
	)},
	{FamilyMovies, GroupGenre, compile(
		`family|family movies|kids films`,
		`children|child friendly|pg rated`,
		`watch with kids|family night`,
	)},
	{DocumentaryMovies, GroupGenre, compile(
		`documentary|docu|real story`,
		`non.*fiction|true story|biography`,
		`educational|informative`,
	)},

	{SadMood, GroupMood, compile(
		`sad|depressed|down|unhappy|blue`,
		`feeling low|not good|bad mood`,
		`heartbroken|broken.*heart`,
		`miserable|gloomy|upset`,
	)},
	{HappyMood, GroupMood, compile(
		`happy|joyful|cheerful|excited`,
		`good mood|feeling great|amazing`,
		`celebrat|party|festive`,
	)},
	{BoredMood, GroupMood, compile(
		`bored|boring|nothing to do`,
		`uninterested|dull|monotonous`,
	)},
	{StressedMood, GroupMood, compile(
		`stressed|anxious|worried|pressure`,
		`tense|nervous|overwhelmed`,
	)},
	{RomanticMood, GroupMood, compile(
		`romantic mood|feeling romantic`,
		`in love|loving|affectionate`,
	)},
	{EnergeticMood, GroupMood, compile(
		`energetic|energized|pumped`,
		`active|hyper|full of energy`,
	)},
	{RelaxedMood, GroupMood, compile(
		`relaxed|calm|peaceful|chill`,
		`laid back|easy.*going|serene`,
	)},

	{Birthday, GroupOccasion, compile(
		`birthday|bday|born today`,
		`my birthday|birthday.*today`,
		`celebrat|party|anniversary`,
	)},
	{DateNight, GroupOccasion, compile(
		`date night|date.*movie`,
		`with partner|with girlfriend|with boyfriend`,
		`couple.*movie|romantic.*evening`,
	)},
	{FriendsHangout, GroupOccasion, compile(
		`with friends|friends.*hangout`,
		`group.*movie|party.*movie`,
	)},
	{FamilyTime, GroupOccasion, compile(
		`with family|family.*time`,
		`parents|children|kids`,
	)},
	{AloneTime, GroupOccasion, compile(
		`alone|by myself|solo`,
		`me time|personal.*time`,
	)},

	{SimilarMovies, GroupSearch, compile(
		`movies like|similar to|like.*movie`,
		`recommend.*like|suggest.*like`,
		`comparable to|same as`,
	)},
	{ActorMovies, GroupSearch, compile(
		`movies with|films with`,
		`actor.*movie|starring`,
		`featuring.*actor`,
	)},
	{DirectorMovies, GroupSearch, compile(
		`director.*movie|movie.*director`,
		`directed by|films by`,
	)},
	{YearMovies, GroupSearch, compile(
		`movies from|films from`,
		`released in|year.*movie`,
		`2023|2022|2021|2020`,
	)},
	{PopularMovies, GroupSearch, compile(
		`popular movies|trending films`,
		`best.*movies|top.*films`,
		`hit movies|blockbuster`,
	)},
	{AwardMovies, GroupSearch, compile(
		`oscar|award.*winning`,
		`academy award|best picture`,
	)},

	{Greeting, GroupGeneral, compile(
		`hi|hello|hey|hola|greetings`,
		`how are you|what's up|howdy`,
	)},
	{Thanks, GroupGeneral, compile(
		`thank|thanks|appreciate|grateful`,
	)},
	{Farewell, GroupGeneral, compile(
		`bye|goodbye|see you|farewell`,
	)},
	{Help, GroupGeneral, compile(
		`help|what can you do|how to use`,
		`commands|options|features`,
	)},
	{JokeRequest, GroupGeneral, compile(
		`joke|funny|make me laugh`,
		`humor|entertain me`,
	)},
	{FactRequest, GroupGeneral, compile(
		`fact|interesting|tell me about`,
		`teach me|share knowledge`,
	)},
	{StoryRequest, GroupGeneral, compile(
		`story|tell me a story`,
		`narrative|tale`,
	)},
	{TimeRequest, GroupGeneral, compile(
		`time|what time|current time`,
		`clock|what.*o.*clock`,
	)},
	{DateRequest, GroupGeneral, compile(
		`date|what date|today.*date`,
		`day|what day`,
	)},

	{BengaliMovies, GroupLocale, compile(
		`সিনেমা|মুভি|চলচ্চিত্র`,
		`দেখব|দেখতে|দেখা`,
		`রেকমেন্ড|সাজেস্ট|বলো`,
	)},
	{BengaliSad, GroupLocale, compile(
		`মন খারাপ|দু:খিত|খারাপ লাগছে`,
		`কাবাব|মন ভারী|মন ভালো না`,
	)},
	{BengaliHappy, GroupLocale, compile(
		`খুশি|আনন্দ|ভালো লাগছে`,
		`মন ভালো|হাসিখুশি`,
	)},
}

var genreOf = map[Intent]string{
	ActionMovies:      "action",
	RomanticMovies:    "romance",
	ComedyMovies:      "comedy",
	HorrorMovies:      "horror",
	SciFiMovies:       "science fiction",
	DramaMovies:       "drama",
	FantasyMovies:     "fantasy",
	AnimationMovies:   "animation",
	FamilyMovies:      "family",
	DocumentaryMovies: "documentary",
}

var moodOf = map[Intent]string{
	SadMood:       "happy",
	HappyMood:     "happy",
	BoredMood:     "action",
	StressedMood:  "comedy",
	RomanticMood:  "romantic",
	EnergeticMood: "action",
	RelaxedMood:   "drama",
}

var occasionOf = map[Intent]string{
	Birthday:       "birthday",
	DateNight:      "date_night",
	FriendsHangout: "friends",
	FamilyTime:     "family_time",
	AloneTime:      "alone",
}
