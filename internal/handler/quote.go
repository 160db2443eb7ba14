package handler

import (
	"math/rand"

	"github.com/tw092669-ctrl/gecko/internal/util"

	"github.com/gin-gonic/gin"
)

// 每日法语（佛子行三十七颂节录），首页随机显示一则
var quotes = []string{
	"諸惡莫作，眾善奉行，自淨其意，是諸佛教。",
	"不實修，難抵擋世間誘惑。",
	"養成什麼習氣，就有什麼過患。",
	"一切不善的分別念，都會招感苦果。",
	"以信心行布施才能真得功德。",
	"沒有智慧的定見，不能解脫煩惱。",
	"過去心不可得，現在心不可得，未來心不可得。",
	"此生幸得暇滿船，自他須度生死海，故於晝夜不懈怠，聞思修是佛子行。",
	"捨離惡境惑漸減，棄除散亂善自增，自心清淨起正見，依靜處是佛子行。",
	"依善知識罪漸消，功德增如上弦月，珍視智慧聖導師，重於自身佛子行。",
	"三界樂如草頭露，均屬剎那壞滅法，不變無上解脫道，奮起希求佛子行。",
	"無論何時行何事，應觀自心之相狀，恆繫正念與正知，成辦利他佛子行。",
}

// QuoteHandler 随机法语
type QuoteHandler struct{}

func NewQuoteHandler() *QuoteHandler {
	return &QuoteHandler{}
}

func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	util.Success(c, util.Response{
		"quotes": quotes,
	})
}

func (h *QuoteHandler) RandomQuote(c *gin.Context) {
	util.Success(c, util.Response{
		"quote": quotes[rand.Intn(len(quotes))],
	})
}
