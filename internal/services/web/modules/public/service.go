package public

const healthBody = "ok"

type service struct{}

func newService() service {
	return service{}
}

func (service) healthBody() string {
	return healthBody
}
